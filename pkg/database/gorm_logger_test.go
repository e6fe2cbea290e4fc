package database

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/foodgram/pkg/logger"
)

func TestGormLoggerTrace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		elapsed time.Duration
		err     error
		want    string
	}{
		{"error logged", gormlogger.Warn, 0, errors.New("syntax error"), "syntax error"},
		{"record not found ignored", gormlogger.Warn, 0, gorm.ErrRecordNotFound, ""},
		{"slow query warned", gormlogger.Warn, time.Second, nil, `"threshold"`},
		{"fast query silent at warn", gormlogger.Warn, 0, nil, ""},
		{"silent level", gormlogger.Silent, time.Second, errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.InitWithWriter(&buf, "db-test", false)

			l := NewGormLogger(100 * time.Millisecond).LogMode(tt.level)
			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), func() (string, int64) {
				return "SELECT 1", 1
			}, tt.err)

			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("expected no output, got %s", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "SELECT 1") {
				t.Errorf("output %s missing %s", out, tt.want)
			}
		})
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "foodgram", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=foodgram sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
