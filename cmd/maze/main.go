// Command maze is a console collaborator for the maze engine: it can
// generate, solve, print, and convert .maze files.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	mazepkg "github.com/artcfox/maze-generator"
)

const signOn = "\nMaze Generation Console Utility\n\n"

var myStdout = bufio.NewWriter(os.Stdout)

func main() {
	app := cli.NewApp()
	app.Name = "maze"
	app.Usage = "generate, solve, print, and convert N-dimensional mazes"
	app.Version = "1.0"

	app.Commands = []cli.Command{
		generateCommand,
		solveCommand,
		printCommand,
		convertCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "maze: %v\n", err)
		os.Exit(1)
	}
}

func parseDims(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	dims := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid dims component %q", p)
		}
		dims[i] = n
	}
	return dims, nil
}

var generateCommand = cli.Command{
	Name:  "generate",
	Usage: "carve a new maze and optionally solve and save it",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "dims", Value: "10,10", Usage: "comma-separated per-axis extents"},
		cli.Int64Flag{Name: "seed", Value: 0, Usage: "random seed (default: current time)"},
		cli.IntFlag{Name: "cores", Value: 0, Usage: "solver worker count (default: all cores)"},
		cli.IntFlag{Name: "start", Value: -1, Usage: "start cell (default: farthest-pair search)"},
		cli.IntFlag{Name: "end", Value: -1, Usage: "end cell (default: farthest-pair search)"},
		cli.StringFlag{Name: "out", Usage: "write the generated+solved maze to this file"},
		cli.BoolFlag{Name: "multi", Usage: "create the in-memory maze with MultipleSolves (not recorded in the saved file)"},
	},
	Action: func(c *cli.Context) error {
		dims, err := parseDims(c.String("dims"))
		if err != nil {
			return err
		}

		seed := c.Int64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		flags := mazepkg.OutputSolution
		if c.Bool("multi") {
			flags |= mazepkg.MultipleSolves
		}

		m, err := mazepkg.Create(dims, mazepkg.Config{Seed: seed, Flags: flags})
		if err != nil {
			return err
		}
		if cores := c.Int("cores"); cores > 0 {
			m.SetCores(cores)
		}

		m.Generate()

		start, end := c.Int("start"), c.Int("end")
		if start < 0 || end < 0 {
			start, end = FarthestPair(m)
		}

		if err := m.Solve(start, end); err != nil {
			return err
		}

		fmt.Fprintf(myStdout, "%sdims=%v cells=%d walls=%d seed=%d start=%d end=%d solutionLength=%d\n",
			signOn, dims, m.TotalCells(), m.TotalWalls(), seed, start, end, m.SolutionLength())
		myStdout.Flush()

		if out := c.String("out"); out != "" {
			return saveTo(m, out)
		}
		if len(dims) == 2 {
			render(os.Stdout, m)
		}
		return nil
	},
}

var solveCommand = cli.Command{
	Name:  "solve",
	Usage: "load a maze and solve it between two cells",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "in", Usage: "input .maze file"},
		cli.StringFlag{Name: "out", Usage: "output .maze file (defaults to --in)"},
		cli.IntFlag{Name: "start", Value: 0},
		cli.IntFlag{Name: "end", Value: -1},
		cli.IntFlag{Name: "cores", Value: 0},
	},
	Action: func(c *cli.Context) error {
		in := c.String("in")
		if in == "" {
			return errors.New("solve: --in is required")
		}

		m, err := loadFrom(in, mazepkg.OutputSolution|mazepkg.MultipleSolves)
		if err != nil {
			return err
		}
		if cores := c.Int("cores"); cores > 0 {
			m.SetCores(cores)
		}

		end := c.Int("end")
		if end < 0 {
			end = m.TotalCells() - 1
		}
		if err := m.Solve(c.Int("start"), end); err != nil {
			return err
		}

		fmt.Fprintf(myStdout, "solutionLength=%d\n", m.SolutionLength())
		myStdout.Flush()

		out := c.String("out")
		if out == "" {
			out = in
		}
		return saveTo(m, out)
	},
}

var printCommand = cli.Command{
	Name:  "print",
	Usage: "render a 2-dimensional maze to the terminal",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "in", Usage: "input .maze file"},
	},
	Action: func(c *cli.Context) error {
		in := c.String("in")
		if in == "" {
			return errors.New("print: --in is required")
		}
		m, err := loadFrom(in, mazepkg.OutputSolution)
		if err != nil {
			return err
		}
		if len(m.Dims()) != 2 {
			return errors.Errorf("print: %q is %d-dimensional, the console renderer only draws 2-D mazes", in, len(m.Dims()))
		}
		render(os.Stdout, m)
		return nil
	},
}

var convertCommand = cli.Command{
	Name:  "convert",
	Usage: "read a maze and rewrite it (validates the file)",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "in", Usage: "input .maze file"},
		cli.StringFlag{Name: "out", Usage: "output .maze file"},
	},
	Action: func(c *cli.Context) error {
		in, out := c.String("in"), c.String("out")
		if in == "" || out == "" {
			return errors.New("convert: --in and --out are required")
		}
		m, err := loadFrom(in, mazepkg.OutputSolution)
		if err != nil {
			return err
		}
		return saveTo(m, out)
	},
}

func loadFrom(path string, flags mazepkg.Flags) (*mazepkg.Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "the file %q could not be opened", path)
	}
	defer f.Close()

	placeholder, err := mazepkg.Create([]int{1}, mazepkg.Config{Seed: 1, Flags: flags})
	if err != nil {
		return nil, err
	}
	m, err := placeholder.Load(f, mazepkg.Config{Flags: flags})
	if err != nil {
		return nil, errors.Wrapf(err, "%q is not valid", path)
	}
	return m, nil
}

func saveTo(m *mazepkg.Maze, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "the file %q could not be opened", path)
	}
	defer f.Close()
	if err := m.Save(f); err != nil {
		return errors.Wrapf(err, "could not write %q", path)
	}
	return nil
}
