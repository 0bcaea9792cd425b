package main

import (
	server "github.com/thereayou/roomhub/cmd/server"
)

func main() {
	server.NewServer().Run()
}
