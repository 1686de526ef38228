// Package repository 仓库层单元测试
package repository

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsIndexUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "sort memory exceeded code",
			err:  mongo.CommandError{Code: 292, Message: "Sort exceeded memory limit"},
			want: true,
		},
		{
			name: "sort memory exceeded name",
			err:  mongo.CommandError{Name: "QueryExceededMemoryLimitNoDiskUseAllowed"},
			want: true,
		},
		{
			name: "wrapped command error",
			err:  fmt.Errorf("failed to query chat sessions: %w", mongo.CommandError{Code: 292}),
			want: true,
		},
		{
			name: "other command error",
			err:  mongo.CommandError{Code: 13, Name: "Unauthorized"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIndexUnavailable(tt.err); got != tt.want {
				t.Errorf("IsIndexUnavailable() = %v, want %v", got, tt.want)
			}
		})
	}
}
