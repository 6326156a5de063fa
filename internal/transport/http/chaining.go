package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sudoku-api/internal/core"
	"sudoku-api/internal/sudoku/human"
	"sudoku-api/internal/sudoku/human/chaining"
	"sudoku-api/pkg/constants"
)

// chainUpgrader upgrades /api/solve/chain/stream connections. Origin
// checking is left permissive, matching this repo's existing handlers
// (no cookie-based auth to protect against CSRF here; the session token
// is itself the credential and travels in the request body/query).
var chainUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SolveChainRequest mirrors SolveAllRequest's shape: the board a client
// has filled in so far, plus whatever candidates/eliminations it has
// already recorded.
type SolveChainRequest struct {
	Token      string  `json:"token" binding:"required"`
	Board      []int   `json:"board" binding:"required"`
	Candidates [][]int `json:"candidates"`
}

// chainHintResponse is the wire shape for one chaining hint: the adapted
// core.Move plus the chaining-specific metadata (common name, difficulty)
// a client needs to render it.
type chainHintResponse struct {
	Move       *core.Move `json:"move"`
	CommonName string     `json:"common_name"`
	Difficulty float64    `json:"difficulty"`
}

// solveChainHandler runs the dynamic chaining engine once over the
// posted board and returns every worthwhile hint it finds, most
// promising first (spec.md's get_hints, batch mode).
func solveChainHandler(c *gin.Context) {
	var req SolveChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := verifyToken(cfg.JWTSecret, req.Token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
		return
	}

	if len(req.Board) != constants.TotalCells {
		c.JSON(http.StatusBadRequest, gin.H{"error": "board must have 81 cells"})
		return
	}

	engine, grid := newChainEngine(req.Board, req.Candidates)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	hints, err := engine.GetHints(ctx, grid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]chainHintResponse, len(hints))
	for i, h := range hints {
		responses[i] = chainHintResponse{
			Move:       h.ToMove(),
			CommonName: engine.GetCommonName(h),
			Difficulty: h.Difficulty,
		}
	}

	c.JSON(http.StatusOK, gin.H{"hints": responses})
}

// solveChainStreamHandler upgrades to a websocket connection, runs the
// engine's full sweep, and then sends each hint as its own message; no
// hint is sent while the search is still running. Authentication happens via a "token" query parameter since
// a websocket upgrade request carries no JSON body.
func solveChainStreamHandler(c *gin.Context) {
	token := c.Query("token")
	if _, err := verifyToken(cfg.JWTSecret, token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
		return
	}

	conn, err := chainUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ERROR [solveChainStream]: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req SolveChainRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if len(req.Board) != constants.TotalCells {
		conn.WriteJSON(gin.H{"error": "board must have 81 cells"})
		return
	}

	engine, grid := newChainEngine(req.Board, req.Candidates)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	hints, err := engine.GetHints(ctx, grid)
	if err != nil {
		conn.WriteJSON(gin.H{"error": err.Error()})
		return
	}

	for _, h := range hints {
		msg := chainHintResponse{
			Move:       h.ToMove(),
			CommonName: engine.GetCommonName(h),
			Difficulty: h.Difficulty,
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("ERROR [solveChainStream]: write failed: %v", err)
			return
		}
	}
	conn.WriteJSON(gin.H{"done": true})
}

// newChainEngine builds a chaining engine (configured from cfg.Chaining,
// falling back to a conservative default when unset) and its GridView
// over the posted board, mirroring solveNextHandler's board
// reconstruction.
func newChainEngine(boardCells []int, candidates [][]int) (*chaining.Engine, chaining.GridView) {
	board := human.NewBoardWithCandidates(boardCells, candidates)
	engineCfg := cfg.Chaining.ToEngineConfig()
	if engineCfg.Level == 0 && !engineCfg.Dynamic && !engineCfg.Multiple && !engineCfg.Nishio {
		engineCfg.Dynamic = true
		engineCfg.Level = 2
		engineCfg.NestingLimit = 2
	}
	if engineCfg.NumThreads == 0 {
		engineCfg.NumThreads = 1
	}
	engine := chaining.NewEngine(engineCfg)
	return engine, chaining.NewBoardView(board)
}
