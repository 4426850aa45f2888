// Package viewer streams chunk meshes and per-tick render state to browser
// clients over a websocket, and feeds their input back into the scene.
package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/voxelworld/internal/camera"
	"github.com/OCharnyshevich/voxelworld/internal/config"
	"github.com/OCharnyshevich/voxelworld/internal/mesh"
	"github.com/OCharnyshevich/voxelworld/internal/scene"
	"github.com/OCharnyshevich/voxelworld/internal/wire"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// Server owns the frame loop. Only the loop goroutine touches the scene;
// HTTP handlers talk to it over channels.
type Server struct {
	cfg   *config.Config
	log   *slog.Logger
	scene *scene.Scene
	codec *wire.Codec

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	inputs chan camera.Input
	join   chan *session
	leave  chan *session
	done   chan struct{}
}

type session struct {
	id  string
	out chan []byte
}

// Bootstrap is the JSON document served at /bootstrap.
type Bootstrap struct {
	Seed      int64    `json:"seed"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Depth     int      `json:"depth"`
	ChunkSize int      `json:"chunk_size"`
	TickHz    int      `json:"tick_hz"`
	FOV       float32  `json:"fov"`
	Near      float32  `json:"near"`
	Far       float32  `json:"far"`
	Materials []string `json:"materials"`
	// UV lists the texture coordinate of each of a face's six vertices.
	UV [6][6][2]uint8 `json:"uv"`
}

// New creates a Server over a built scene.
func New(cfg *config.Config, sc *scene.Scene, codec *wire.Codec, log *slog.Logger) *Server {
	return &Server{
		cfg:   cfg,
		log:   log.With("component", "viewer"),
		scene: sc,
		codec: codec,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		inputs: make(chan camera.Input, 64),
		join:   make(chan *session),
		leave:  make(chan *session),
		done:   make(chan struct{}),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bootstrap", s.handleBootstrap)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Start listens on the configured address and runs the frame loop until ctx
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Viewer.Addr
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.log.Info("viewer started", "addr", listener.Addr().String(), "tickHz", s.cfg.Viewer.TickHz)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	s.log.Info("viewer shutting down")
	return err
}

func (s *Server) handleBootstrap(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	resp := Bootstrap{
		Seed:      s.cfg.Seed,
		Width:     s.cfg.World.Width,
		Height:    s.cfg.World.Height,
		Depth:     s.cfg.World.Depth,
		ChunkSize: s.cfg.World.ChunkSize,
		TickHz:    s.cfg.Viewer.TickHz,
		FOV:       s.cfg.Camera.FOV,
		Near:      s.cfg.Camera.Near,
		Far:       s.cfg.Camera.Far,
	}
	for _, m := range voxel.Materials() {
		resp.Materials = append(resp.Materials, m.String())
	}
	for f := range resp.UV {
		for n := range resp.UV[f] {
			u, v := mesh.UV(mesh.Face(f), n)
			resp.UV[f][n] = [2]uint8{u, v}
		}
	}

	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(resp)
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess := &session{
		id:  fmt.Sprintf("V%d", s.nextID.Add(1)),
		out: make(chan []byte, len(s.scene.World().Chunks())+64),
	}
	select {
	case s.join <- sess:
	case <-s.done:
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "stopping"), time.Now().Add(time.Second))
		return
	}
	log := s.log.With("session", sess.id)
	log.Info("client connected", "remote", r.RemoteAddr)

	// The writer closes conn once the frame loop stops feeding it, which
	// unblocks the reader below.
	writeErr := make(chan error, 1)
	go func() {
		defer conn.Close()
		for b := range sess.out {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
				writeErr <- err
				return
			}
		}
		writeErr <- nil
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var in camera.Input
		if err := json.Unmarshal(msg, &in); err != nil {
			log.Debug("bad input", "error", err)
			continue
		}
		select {
		case s.inputs <- in:
		default:
			// Drop input under load; the next message carries fresh state.
		}
	}

	select {
	case s.leave <- sess:
	case <-s.done:
	}
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
	log.Info("client disconnected")
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
