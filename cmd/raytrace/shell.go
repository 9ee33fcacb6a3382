package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	"github.com/kvelez/raytrace"
	"github.com/kvelez/raytrace/internal/scene"
)

// command is one interactive shell verb, modeled on the teacher's
// GML-shell Command registry: a canonical symbol, aliases, and a
// handler that mutates shellState or performs a render.
type command struct {
	Symbol       string
	Aliases      []string
	ExpectedArgs []string
	HelpText     string
	Run          func(*shellState, []string) error
}

type shellState struct {
	scene         *scene.Scene
	cameraOptions raytrace.CameraOptions
	renderOptions raytrace.RenderOptions
	commands      []*command
}

var errQuit = errors.New("quit")

// runShell drives an interactive camera shell: an operator nudges
// look_from/look_to/fov/ttl/mode and re-renders to a file repeatedly
// in one process, without re-parsing the scene each time.
func runShell(s *scene.Scene, cameraOptions raytrace.CameraOptions, renderOptions raytrace.RenderOptions) {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:       "raytrace> ",
		HistoryFile:  shellHistoryFilePath(),
		HistoryLimit: 10000,
	})
	if err != nil {
		log.Fatalf("readline init error: %v", err)
	}

	st := &shellState{
		scene:         s,
		cameraOptions: cameraOptions,
		renderOptions: renderOptions,
	}

	lookup := make(map[string]*command)
	register := func(c *command) {
		add := func(symbol string) {
			if lookup[symbol] != nil {
				log.Fatalf("duplicate command: %v vs %v", c, lookup[symbol])
			}
			lookup[symbol] = c
		}
		st.commands = append(st.commands, c)
		add(c.Symbol)
		for _, alias := range c.Aliases {
			add(alias)
		}
	}

	register(&command{
		Symbol: ":from", Aliases: []string{":f"}, ExpectedArgs: []string{"x,y,z"},
		HelpText: "Set look_from",
		Run: func(st *shellState, args []string) error {
			v, err := parseVec3(strings.Join(args, ","))
			if err != nil {
				return err
			}
			st.cameraOptions.LookFrom = v
			return nil
		},
	})
	register(&command{
		Symbol: ":to", Aliases: []string{":t"}, ExpectedArgs: []string{"x,y,z"},
		HelpText: "Set look_to",
		Run: func(st *shellState, args []string) error {
			v, err := parseVec3(strings.Join(args, ","))
			if err != nil {
				return err
			}
			st.cameraOptions.LookTo = v
			return nil
		},
	})
	register(&command{
		Symbol: ":fov", ExpectedArgs: []string{"radians"},
		HelpText: "Set field of view",
		Run: func(st *shellState, args []string) error {
			if len(args) != 1 {
				return errors.New("usage: :fov <radians>")
			}
			v, err := parseFloat(args[0])
			if err != nil {
				return err
			}
			st.cameraOptions.Fov = v
			return nil
		},
	})
	register(&command{
		Symbol: ":ttl", ExpectedArgs: []string{"depth"},
		HelpText: "Set recursion budget",
		Run: func(st *shellState, args []string) error {
			if len(args) != 1 {
				return errors.New("usage: :ttl <depth>")
			}
			v, err := parseFloat(args[0])
			if err != nil {
				return err
			}
			st.renderOptions.TTLDepth = int(v)
			return nil
		},
	})
	register(&command{
		Symbol: ":mode", ExpectedArgs: []string{"full|depth|normal"},
		HelpText: "Set render mode",
		Run: func(st *shellState, args []string) error {
			if len(args) != 1 {
				return errors.New("usage: :mode <full|depth|normal>")
			}
			m, err := parseMode(args[0])
			if err != nil {
				return err
			}
			st.renderOptions.Mode = m
			return nil
		},
	})
	register(&command{
		Symbol: ":render", Aliases: []string{":r"}, ExpectedArgs: []string{"<filename>"},
		HelpText: "Render with the current options to a PNG file",
		Run: func(st *shellState, args []string) error {
			if len(args) < 1 {
				return errors.New("usage: :render <filename>")
			}
			if err := renderToFile(st.scene, st.cameraOptions, st.renderOptions, args[0]); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})
	register(&command{
		Symbol: ":show", Aliases: []string{":s"},
		HelpText: "Print the current camera and render options",
		Run: func(st *shellState, args []string) error {
			fmt.Printf("camera: %+v\n", st.cameraOptions)
			fmt.Printf("render: %+v\n", st.renderOptions)
			return nil
		},
	})
	register(&command{
		Symbol: ":help", Aliases: []string{":h"},
		HelpText: "Prints this help text",
		Run: func(st *shellState, args []string) error {
			showHelp(st)
			return nil
		},
	})
	register(&command{
		Symbol: ":quit", Aliases: []string{":q"},
		HelpText: "Exit the shell",
		Run: func(st *shellState, args []string) error {
			return errQuit
		},
	})

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("readline error: %v", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := lookup[fields[0]]
		if cmd == nil {
			fmt.Printf("unknown command: %v (try :help)\n", fields[0])
			continue
		}
		if err := cmd.Run(st, fields[1:]); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Printf("command error: %v\n", err)
		}
	}
}

func showHelp(st *shellState) {
	usage := make([]string, len(st.commands))
	maxLen := 0
	for i, c := range st.commands {
		parts := []string{c.Symbol}
		parts = append(parts, c.Aliases...)
		parts = append(parts, c.ExpectedArgs...)
		usage[i] = strings.Join(parts, " ")
		maxLen = max(maxLen, len(usage[i]))
	}
	fmt.Printf("Commands:\n")
	for i, c := range st.commands {
		fmt.Printf("  %-*s : %s\n", maxLen, usage[i], c.HelpText)
	}
}

func shellHistoryFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("user home dir error: %v\n", err)
		return ""
	}
	return filepath.Join(home, ".raytrace_history")
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
