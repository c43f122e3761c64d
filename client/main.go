// File: client/main.go

// Command client is a terminal viewer for the fruit game server.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lguibr/asciiring/helpers"
	"github.com/lguibr/fruitfall/game"
	"github.com/lguibr/fruitfall/render"
	"golang.org/x/net/websocket"
)

func main() {
	url := flag.String("url", "ws://localhost:3001/game", "game WebSocket URL")
	origin := flag.String("origin", "http://localhost/", "Origin header sent on connect")
	auto := flag.Bool("auto", false, "click the lowest reward on every snapshot")
	width := flag.Int("width", 1000, "world width used for drawing")
	height := flag.Int("height", 500, "world height used for drawing")
	color := flag.Bool("color", true, "colour objects with ANSI codes")
	flag.Parse()

	conn, err := websocket.Dial(*url, "", *origin)
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		os.Exit(1)
	}
	defer conn.Close()

	viewport := render.DefaultViewport(*width, *height)
	viewport.Color = *color
	view := newViewer(viewport)

	term, err := makeRaw(os.Stdin.Fd())
	if err != nil {
		fmt.Println("Error setting raw mode:", err)
		os.Exit(1)
	}
	quit := func(code int) {
		term.restore()
		_ = conn.Close()
		os.Exit(code)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		quit(0)
	}()

	go func() {
		for {
			var frame string
			if err := websocket.Message.Receive(conn, &frame); err != nil {
				term.restore()
				fmt.Println("\r\nConnection closed:", err)
				os.Exit(0)
			}
			isSnapshot := view.apply(frame)
			if isSnapshot && *auto {
				if o, ok := view.target(true); ok {
					_ = websocket.Message.Send(conn, clickCommand(o))
				}
			}
			helpers.ClearScreen()
			fmt.Print(view.screen())
		}
	}()

	key := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(key); err != nil {
			quit(1)
		}
		var out string
		switch key[0] {
		case 'r', 'R':
			out = game.ReplayCommand
		case 'h', 'H':
			o, ok := view.target(false)
			if !ok {
				continue
			}
			out = clickCommand(o)
		case 'q', 'Q', 3: // 3 is Ctrl-C with ISIG disabled
			fmt.Print("Quitting game\r\n")
			quit(0)
		default:
			continue
		}
		if err := websocket.Message.Send(conn, out); err != nil {
			term.restore()
			fmt.Println("Error sending to server:", err)
			os.Exit(1)
		}
	}
}
