package infra

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DatabaseName string = "Trivia"

	QuizSessionTable  string = "QuizSession"
	QuizQuestionTable string = "QuizQuestion"
)

const ReadWriteDsnOption string = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=temp_store(MEMORY)&_pragma=cache_size(10000)&_pragma=foreign_keys(1)"

var schema []string = []string{
	`CREATE TABLE IF NOT EXISTS ` + QuizSessionTable + ` (
		session_id    TEXT PRIMARY KEY,
		amount        INTEGER NOT NULL,
		category      INTEGER,
		difficulty    TEXT NOT NULL,
		current_index INTEGER NOT NULL,
		correct_count INTEGER NOT NULL,
		expires_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_session_expires_at ON ` + QuizSessionTable + ` (expires_at)`,
	`CREATE TABLE IF NOT EXISTS ` + QuizQuestionTable + ` (
		session_id        TEXT NOT NULL REFERENCES ` + QuizSessionTable + `(session_id) ON DELETE CASCADE,
		position          INTEGER NOT NULL,
		category          TEXT NOT NULL,
		question_text     TEXT NOT NULL,
		correct_answer    TEXT NOT NULL,
		incorrect_answers TEXT NOT NULL,
		choices           TEXT NOT NULL,
		PRIMARY KEY (session_id, position)
	)`,
}

// プロセスの間だけ使う一時ディレクトリ上のSQLite。Closeでファイルごと消す
type SQLiteDB struct {
	conn      *sqlx.DB
	dbFileDir string
}

func (db *SQLiteDB) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
	os.RemoveAll(db.dbFileDir)
}

func (db *SQLiteDB) Get(dest any, query string, params ...any) error {
	return db.conn.Get(dest, query, params...)
}

func (db *SQLiteDB) Select(dest any, query string, params ...any) error {
	return db.conn.Select(dest, query, params...)
}

// fnがエラーを返したらロールバックする
func (db *SQLiteDB) Transaction(fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func NewSQLiteDB(dbFileDir string) (*SQLiteDB, error) {
	conn, err := sqlx.Open("sqlite", fmt.Sprintf("file:%s/%s.db?%s", dbFileDir, DatabaseName, ReadWriteDsnOption))
	if err != nil {
		os.RemoveAll(dbFileDir)
		return nil, err
	}
	// SQLiteの書き込みは1本に絞る。読み込みも同じ接続を使うので書いた内容はすぐ見える
	conn.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			os.RemoveAll(dbFileDir)
			return nil, fmt.Errorf("could not create schema: %w", err)
		}
	}

	return &SQLiteDB{
		conn:      conn,
		dbFileDir: dbFileDir,
	}, nil
}
