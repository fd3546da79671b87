package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tanayvk/conduit/config"
	"github.com/tanayvk/conduit/middleware"
	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/router"
	"github.com/tanayvk/conduit/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalln("unable to load config:", err)
		}
		cfg = loaded
	}

	log.SetOutput(cfg.Logging.Writer())

	rt := router.NewRouter()

	rt.Get("/", func(r *request.Request) response.Response {
		return response.NewTextResponse("conduit up\n")
	})

	rt.Get("/greet/{name}", func(r *request.Request) response.Response {
		return response.NewTextResponse("hello " + r.PathParams["name"] + "\n")
	})

	rt.Get("/feed/{page=1}", func(r *request.Request) response.Response {
		resp, err := response.NewJSONResponse(map[string]string{"page": r.PathParams["page"]})
		if err != nil {
			return response.NewStatusResponse(response.StatusInternalServerError)
		}
		return resp
	})

	rt.Get("/files/{path...}", func(r *request.Request) response.Response {
		return response.NewTextResponse("would serve " + r.PathParams["path"] + "\n")
	})

	rt.Post("/echo", func(r *request.Request) response.Response {
		return response.NewTextResponse(string(r.Body))
	})

	p := pipeline.New(rt)

	p.Use(middleware.Recoverer)
	p.Use(middleware.RequestID)
	if cfg.Logging.Colored {
		p.Use(middleware.LoggingColored())
	} else {
		p.Use(middleware.Logging)
	}
	if cfg.Metrics.Enabled {
		m := middleware.NewMetrics()
		p.Use(m.Middleware())
		go func() {
			if err := middleware.ListenAndServe(cfg.Metrics.ListenAddress); err != nil {
				log.Fatalln("metrics listener:", err)
			}
		}()
	}
	p.Use(
		middleware.RateLimit(100, 200),
		middleware.Timeout(30*time.Second),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress,
	)

	p.Seal()

	s, err := server.Serve(server.ServerOpts{
		Address:          cfg.Server.Address,
		ReadTimeout:      time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout:     time.Duration(cfg.Server.WriteTimeout),
		KeepAliveTimeout: time.Duration(cfg.Server.KeepAliveTimeout),
	}, p.Handler())
	if err != nil {
		log.Fatalln("unable to start server:", err)
	}
	log.Println("server listening on", s.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down")
	if err := s.Close(); err != nil {
		log.Println("error during shutdown:", err)
	}
}
