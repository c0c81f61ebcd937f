// Package target is a small fasthttp server used to calibrate blitz against a known
// upstream: fixed payload size and an optional artificial delay.
package target

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"time"

	"blitz/internal/log"
	"blitz/internal/types"

	"github.com/valyala/fasthttp"
)

const Name = "blitz-target"

type Options struct {
	Size  int
	Delay time.Duration
}

// Handler serves a payload of opts.Size bytes on every path except:
//
//	/health        JSON health status
//	/status/{code} empty response with that status code
func Handler(opts Options) fasthttp.RequestHandler {
	payload := bytes.Repeat([]byte("x"), max(opts.Size, 0))

	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())

		switch {
		case path == "/health":
			health(ctx)
			return
		case strings.HasPrefix(path, "/status/"):
			code, err := strconv.Atoi(strings.TrimPrefix(path, "/status/"))
			if err != nil || code < 100 || code > 599 {
				ctx.Error("Invalid status code", fasthttp.StatusBadRequest)
				return
			}
			ctx.SetStatusCode(code)
			return
		}

		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
		ctx.SetContentType("application/octet-stream")
		ctx.SetBody(payload)
	}
}

func health(ctx *fasthttp.RequestCtx) {
	response := &types.Status{
		Status: "healthy",
		Server: Name,
		Code:   fasthttp.StatusOK,
	}

	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	if _, err := response.WriteTo(ctx); err != nil {
		log.Logger.Debugf("Failed to encode health response: %v", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
}

func LoggingMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		next(ctx)

		log.Logger.Debugf("%s %s - %d - %v",
			ctx.Method(),
			ctx.Path(),
			ctx.Response.StatusCode(),
			time.Since(start),
		)
	}
}

func NewServer(opts Options) *fasthttp.Server {
	return &fasthttp.Server{
		Name:         Name,
		Handler:      LoggingMiddleware(Handler(opts)),
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
	}
}

// Serve blocks serving ln until it is closed.
func Serve(ln net.Listener, opts Options) error {
	log.Logger.Infof("Target serving %d byte payloads on %s", opts.Size, ln.Addr())
	return NewServer(opts).Serve(ln)
}

func ListenAndServe(addr string, opts Options) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ln, opts)
}
