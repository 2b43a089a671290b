package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/confsync/encode"
	"github.com/signadot/confsync/load"
	"github.com/signadot/confsync/reconcile"
	"github.com/signadot/confsync/schema"
	"github.com/signadot/confsync/tree"

	"github.com/scott-cotton/cli"
)

const running = `
system:
  hostname: h1
  interface:
  - name: eth0
    mtu: 1500
  - name: eth1
    mtu: 9000
`

func readRunning(t *testing.T) tree.Node {
	t.Helper()
	reg, err := schema.Load("../../testdata/system.yaml")
	if err != nil {
		t.Fatal(err)
	}
	s, err := load.ParseSet(reg, []byte(running))
	if err != nil {
		t.Fatal(err)
	}
	return tree.Wrap(s)
}

func TestOnly(t *testing.T) {
	doc := readRunning(t)
	got, err := only(doc, `Name == "mtu" && Value > 1500`)
	if err != nil {
		t.Fatal(err)
	}
	want := "system:\n  interface:\n  - name: eth1\n    mtu: 9000"
	if s := encode.MustString(got); s != want {
		t.Errorf("got\n%s\nwant\n%s", s, want)
	}
	none, err := only(doc, `Name == "nope"`)
	if err != nil {
		t.Fatal(err)
	}
	if !tree.IsSynthetic(none) || none.Len() != 0 {
		t.Errorf("nothing selected: %d roots", none.Len())
	}
	if _, err := only(doc, `Name ==`); err == nil {
		t.Errorf("bad expression accepted")
	}
}

func TestVerboseLogger(t *testing.T) {
	a := readRunning(t)
	b := a.Clone()
	h, err := b.Lookup("system/hostname")
	if err != nil {
		t.Fatal(err)
	}
	if err := h.SetValue(tree.FromString("h2")); err != nil {
		t.Fatal(err)
	}
	for _, verbose := range []bool{false, true} {
		buf := bytes.NewBuffer(nil)
		cfg := &MainConfig{Log: newLogger(buf, verbose)}
		reconcile.Sync(a, b, cfg.reconcileOpts()...)
		logged := strings.Contains(buf.String(), "msg=\"sync plan\"")
		if logged != verbose {
			t.Errorf("verbose=%v logged:\n%s", verbose, buf)
		}
		if strings.Contains(buf.String(), "time=") {
			t.Errorf("time logged:\n%s", buf)
		}
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestOpenOut(t *testing.T) {
	stdout := nopWriteCloser{bytes.NewBuffer(nil)}
	cc := &cli.Context{Out: stdout}
	cfg := &MainConfig{Log: newLogger(io.Discard, false)}
	if _, err := cfg.outOpt(cc, "-"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.openOut(cc); err != nil {
		t.Fatal(err)
	}
	if cc.Out != stdout || cfg.CloseOut != nil {
		t.Errorf("-o - replaced stdout")
	}

	p := filepath.Join(t.TempDir(), "edit.yaml")
	if _, err := cfg.outOpt(cc, p); err != nil {
		t.Fatal(err)
	}
	if err := cfg.openOut(cc); err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(cc.Out, "in sync\n"); err != nil {
		t.Fatal(err)
	}
	cfg.closeOut()
	if cfg.CloseOut != nil {
		t.Errorf("output not released")
	}
	d, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "in sync\n" {
		t.Errorf("got %q", d)
	}

	cfg.Out = filepath.Join(t.TempDir(), "missing", "edit.yaml")
	if err := cfg.openOut(cc); err == nil {
		t.Errorf("opened output in a missing directory")
	}
}
