package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"

	kanban "github.com/shr00m335/kanban-board"
	"github.com/shr00m335/kanban-board/db"
)

func init() {
	var debug string
	debug = os.Getenv("DEBUG")
	if debug == "1" {
		log.SetLevel(log.DebugLevel)
	}
	logrus.SetReportCaller(true)
	formatter := &logrus.TextFormatter{
		CallerPrettyfier: caller(),
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyFile: "caller",
		},
	}
	formatter.TimestampFormat = "15:04:05.999999999"
	logrus.SetFormatter(formatter)
}

// caller returns string presentation of log caller which is formatted as
// `/path/to/file.go:line_number`. e.g. `/db/store.go:25`
func caller() func(*runtime.Frame) (function string, file string) {
	return func(f *runtime.Frame) (function string, file string) {
		p, _ := os.Getwd()
		return "", fmt.Sprintf("%s:%d", strings.TrimPrefix(f.File, p), f.Line)
	}
}

type Opts struct {
	Create      bool   `docopt:"create"`
	Ls          bool   `docopt:"ls"`
	Show        bool   `docopt:"show"`
	Rm          bool   `docopt:"rm"`
	AddBoard    bool   `docopt:"add-board"`
	AddList     bool   `docopt:"add-list"`
	AddItem     bool   `docopt:"add-item"`
	Export      bool   `docopt:"export"`
	Import      bool   `docopt:"import"`
	Watch       bool   `docopt:"watch"`
	Name        string `docopt:"<name>"`
	Description string `docopt:"<description>"`
	ID          string `docopt:"<id>"`
	Board       string `docopt:"<board>"`
	List        string `docopt:"<list>"`
	Title       string `docopt:"<title>"`
	Item        string `docopt:"<item>"`
	Color       string `docopt:"--color"`
	Out         bool   `docopt:"-o"`
	Filename    string `docopt:"<filename>"`
}

func main() {
	// see https://github.com/google/go-cmdtest
	os.Exit(run())
}

func run() (rc int) {

	usage := `kanban board

Usage:
  kb create <name> <description>
  kb ls
  kb show <id>
  kb rm <id>
  kb add-board <id> <board>
  kb add-list [--color=<rgb>] <id> <board> <title>
  kb add-item <id> <board> <list> <item>
  kb export <id> [-o <filename>]
  kb import <filename>
  kb watch

Options:
  -h --help      Show this screen.
  --version      Show version.
  --color=<rgb>  List color as RRGGBB [default: FFFFFF].

Projects are kept in $KBDIR/projects, or ./projects if KBDIR is unset.
`
	parser := &docopt.Parser{HelpHandler: docopt.PrintHelpOnly}
	o, err := parser.ParseArgs(usage, os.Args[1:], "0.0")
	if err != nil {
		return 22
	}
	var opts Opts
	err = o.Bind(&opts)
	if err != nil {
		log.Error(err)
		return 22
	}
	log.Debug(opts)

	store := db.New(db.DirFunc(datadir))

	switch true {
	case opts.Create:
		p, err := store.Create(opts.Name, opts.Description)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(p.ID)
	case opts.Ls:
		projects, err := store.List()
		if err != nil {
			log.Error(err)
			return 42
		}
		for _, p := range projects {
			fmt.Printf("%s %s\n", p.ID, p.Name)
		}
	case opts.Show:
		p, err := store.Read(opts.ID)
		if err != nil {
			log.Error(err)
			return 42
		}
		show(os.Stdout, p)
	case opts.Rm:
		err := store.Delete(opts.ID)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.AddBoard:
		_, err := addBoard(store, opts.ID, opts.Board)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.AddList:
		color, err := db.ParseColor(opts.Color)
		if err != nil {
			log.Error(err)
			return 22
		}
		_, err = addList(store, opts.ID, opts.Board, opts.Title, color)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.AddItem:
		_, err := addItem(store, opts.ID, opts.Board, opts.List, opts.Item)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Export:
		var out io.Writer = os.Stdout
		if opts.Out {
			fh, err := os.Create(opts.Filename)
			if err != nil {
				log.Error(err)
				return 5
			}
			defer fh.Close()
			out = fh
		}
		err := store.Export(opts.ID, out)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Import:
		fh, err := os.Open(opts.Filename)
		if err != nil {
			log.Error(err)
			return 5
		}
		defer fh.Close()
		p, err := store.Import(fh)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(p.ID)
	case opts.Watch:
		err := watch(store)
		if err != nil {
			log.Error(err)
			return 42
		}
	}
	return 0
}

func datadir() (dir string, err error) {
	dir = os.Getenv("KBDIR")
	if dir == "" {
		dir, err = os.Getwd()
	}
	return
}

func show(wr io.Writer, p *db.Project) {
	fmt.Fprintf(wr, "%s %s\n", p.ID, p.Name)
	fmt.Fprintln(wr, p.Description)
	for _, b := range p.Boards {
		fmt.Fprintln(wr, b.Name)
		for _, l := range b.Lists {
			fmt.Fprintf(wr, "  %s %s\n", l.Title, l.Color)
			for _, item := range l.Items {
				fmt.Fprintf(wr, "    %s\n", item)
			}
		}
	}
}

func addBoard(store *db.Store, id, name string) (p *db.Project, err error) {
	defer Return(&err)
	p, err = store.Read(id)
	Ck(err)
	if p.Board(name) != nil {
		return nil, kanban.Errorf(kanban.ValidationError, "board %q already exists", name)
	}
	p.Boards = append(p.Boards, db.Board{Name: name, Lists: []db.List{}})
	return store.Save(p)
}

func addList(store *db.Store, id, board, title string, color db.Color) (p *db.Project, err error) {
	defer Return(&err)
	p, err = store.Read(id)
	Ck(err)
	b := p.Board(board)
	if b == nil {
		return nil, kanban.Errorf(kanban.ValidationError, "no board %q", board)
	}
	if b.List(title) != nil {
		return nil, kanban.Errorf(kanban.ValidationError, "list %q already exists", title)
	}
	b.Lists = append(b.Lists, db.List{Title: title, Color: color, Items: []string{}})
	return store.Save(p)
}

func addItem(store *db.Store, id, board, list, item string) (p *db.Project, err error) {
	defer Return(&err)
	p, err = store.Read(id)
	Ck(err)
	b := p.Board(board)
	if b == nil {
		return nil, kanban.Errorf(kanban.ValidationError, "no board %q", board)
	}
	l := b.List(list)
	if l == nil {
		return nil, kanban.Errorf(kanban.ValidationError, "no list %q", list)
	}
	l.Items = append(l.Items, item)
	return store.Save(p)
}

// watch prints project changes until interrupted.
func watch(store *db.Store) (err error) {
	w, err := store.Watch()
	if err != nil {
		return
	}
	defer w.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			fmt.Printf("%s %s\n", ev.Op, ev.ID)
		case <-sig:
			return
		}
	}
}
