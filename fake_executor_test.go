package fluentdb

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
)

// fakeExecutor records every statement it is asked to run and replays
// canned rows and affected counts.
type fakeExecutor struct {
	columns  []string
	rows     [][]any
	affected int64

	prepareErr error
	queryErr   error
	execErr    error

	prepared []string
	bound    []Params
	closed   int
}

func (f *fakeExecutor) PrepareContext(_ context.Context, text string) (Statement, error) {
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	f.prepared = append(f.prepared, text)
	return &fakeStatement{exec: f}, nil
}

type fakeStatement struct {
	exec *fakeExecutor
}

func (s *fakeStatement) QueryContext(_ context.Context, params Params) (Cursor, error) {
	s.exec.bound = append(s.exec.bound, params.Clone())
	if s.exec.queryErr != nil {
		return nil, s.exec.queryErr
	}
	return &fakeCursor{columns: s.exec.columns, rows: s.exec.rows}, nil
}

func (s *fakeStatement) ExecContext(_ context.Context, params Params) (sql.Result, error) {
	s.exec.bound = append(s.exec.bound, params.Clone())
	if s.exec.execErr != nil {
		return nil, s.exec.execErr
	}
	return fakeResult(s.exec.affected), nil
}

func (s *fakeStatement) Close() error {
	s.exec.closed++
	return nil
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, errors.New("not supported") }
func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

type fakeCursor struct {
	columns []string
	rows    [][]any
	pos     int
}

func (c *fakeCursor) FetchOne(mode FetchMode) (Row, bool, error) {
	if c.pos >= len(c.rows) {
		return Row{}, false, nil
	}
	r := NewRow(mode, c.columns, c.rows[c.pos])
	c.pos++
	return r, true, nil
}

func (c *fakeCursor) FetchAll(mode FetchMode) ([]Row, error) {
	out := make([]Row, 0)
	for {
		r, ok, err := c.FetchOne(mode)
		if err != nil || !ok {
			return out, err
		}
		out = append(out, r)
	}
}

// ScanOne only supports a *string destination filled from the first column.
func (c *fakeCursor) ScanOne(dest any) (bool, error) {
	if err := checkPointer(dest); err != nil {
		return false, err
	}
	if c.pos >= len(c.rows) {
		return false, nil
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(c.rows[c.pos][0]))
	c.pos++
	return true, nil
}

func (c *fakeCursor) ScanAll(dest any) error {
	if err := checkPointer(dest); err != nil {
		return err
	}
	return errors.New("not supported")
}

func (c *fakeCursor) Close() error { return nil }
