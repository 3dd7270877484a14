// Package history 将已结束的会话记录到 SQLite
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/parthchandak02/auto-swiper/pkg/session"
)

const schema = `CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL,
	ended_at INTEGER NOT NULL,
	loops INTEGER NOT NULL,
	attempts INTEGER NOT NULL,
	hits INTEGER NOT NULL,
	misses INTEGER NOT NULL,
	interrupted INTEGER NOT NULL
)`

// Entry 一条会话记录
type Entry struct {
	ID     int64
	Report session.Report
}

// Store 会话历史库
type Store struct {
	db *sql.DB
}

// Open 打开（必要时创建）历史库
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开历史库失败: %w", err)
	}
	// 单连接，避免 SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化历史库失败: %w", err)
	}
	return &Store{db: db}, nil
}

// Record 记录一次会话，返回记录 ID
func (s *Store) Record(ctx context.Context, r session.Report) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, loops, attempts, hits, misses, interrupted)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Start.UnixMilli(), r.End.UnixMilli(), r.Loops,
		r.Stats.Attempts, r.Stats.Hits, r.Stats.Misses, r.Interrupted,
	)
	if err != nil {
		return 0, fmt.Errorf("写入会话记录失败: %w", err)
	}
	return res.LastInsertId()
}

// Recent 按开始时间倒序返回最近的会话
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, loops, attempts, hits, misses, interrupted
		FROM sessions ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("查询会话记录失败: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			start, end           int64
			attempts, hits, miss int64
		)
		if err := rows.Scan(&e.ID, &start, &end, &e.Report.Loops,
			&attempts, &hits, &miss, &e.Report.Interrupted); err != nil {
			return nil, fmt.Errorf("读取会话记录失败: %w", err)
		}
		e.Report.Start = time.UnixMilli(start)
		e.Report.End = time.UnixMilli(end)
		e.Report.Stats = session.NewSnapshot(attempts, hits, miss)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close 关闭历史库
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
