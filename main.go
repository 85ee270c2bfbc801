package main

import "gigwork-chat-app/config"

func main() {
	config.RunServer()
}
