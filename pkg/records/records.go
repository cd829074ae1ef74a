// Package records 保存关卡结果历史（SQLite，纯 Go 驱动）
package records

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome 一次关卡结束的记录
type Outcome struct {
	ID        int64
	Level     int
	Won       bool
	Seconds   float64 // 关卡秒表读数；未启用秒表时为 0
	CreatedAt time.Time
}

// Summary 单个关卡的汇总
type Summary struct {
	Level    int
	Plays    int
	Wins     int
	BestTime float64 // 胜利中最短秒表读数，没有计时胜利时为 0
}

// Store SQLite 结果存储
type Store struct {
	db *sql.DB
}

// Open 打开（或创建）数据库；路径以 ~ 开头时展开为用户目录
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("records: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("records: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("records: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("records: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("records: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			won INTEGER NOT NULL,
			seconds REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_level ON outcomes(level);
	`)
	return err
}

// Close 关闭数据库
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record 写入一次关卡结果
func (s *Store) Record(level int, won bool, seconds float64) error {
	w := 0
	if won {
		w = 1
	}
	if _, err := s.db.Exec(
		"INSERT INTO outcomes (level, won, seconds) VALUES (?, ?, ?)",
		level, w, seconds,
	); err != nil {
		return fmt.Errorf("records: cannot save outcome: %w", err)
	}
	return nil
}

// Recent 最近的 limit 条记录，新的在前
func (s *Store) Recent(limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, level, won, seconds, created_at
		 FROM outcomes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("records: cannot query outcomes: %w", err)
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var o Outcome
		var won int
		var createdAt any
		if err := rows.Scan(&o.ID, &o.Level, &won, &o.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("records: cannot scan row: %w", err)
		}
		o.Won = won != 0
		o.CreatedAt = parseTime(createdAt)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records: row iteration error: %w", err)
	}
	return out, nil
}

// Summaries 按关卡汇总
func (s *Store) Summaries() ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), COALESCE(SUM(won), 0),
		        COALESCE(MIN(CASE WHEN won = 1 AND seconds > 0 THEN seconds END), 0)
		 FROM outcomes
		 GROUP BY level
		 ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("records: cannot summarize outcomes: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.Level, &sm.Plays, &sm.Wins, &sm.BestTime); err != nil {
			return nil, fmt.Errorf("records: cannot scan summary: %w", err)
		}
		out = append(out, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records: row iteration error: %w", err)
	}
	return out, nil
}

// parseTime 驱动可能返回 time.Time 或字符串
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
