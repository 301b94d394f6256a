package main

import (
	"flag"
	"log"
	"os"

	"chess-minimax/server"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	origins := flag.String("origins", server.DefaultConfig.AllowOrigins, "CORS allowed origins")
	depth := flag.Int("depth", server.DefaultConfig.DefaultDepth, "search depth for games created without one")
	maxDepth := flag.Int("maxdepth", server.DefaultConfig.MaxDepth, "deepest search a client may request")
	seed := flag.Int64("seed", 0, "seed for tie-breaking (0 = time based per game)")
	parallel := flag.Bool("parallel", false, "score root moves in parallel")
	quiet := flag.Bool("quiet", false, "disable the access log")
	flag.Parse()

	cfg := server.Config{
		AllowOrigins: *origins,
		DefaultDepth: *depth,
		MaxDepth:     *maxDepth,
		Seed:         *seed,
		Parallel:     *parallel,
		AccessLog:    os.Stdout,
	}
	if *quiet {
		cfg.AccessLog = nil
	}

	srv := server.New(cfg)
	log.Printf("listening on %s", *addr)
	log.Fatal(srv.Listen(*addr))
}
