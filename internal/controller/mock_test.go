package controller_test

import (
	"context"

	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, postID int64) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]model.Comment)
	return comments, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, postID int64, content string) (*model.Comment, error) {
	args := m.Called(ctx, postID, content)
	comment, _ := args.Get(0).(*model.Comment)
	return comment, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, commentID int64, postID int64, content string) (*model.Comment, error) {
	args := m.Called(ctx, commentID, postID, content)
	comment, _ := args.Get(0).(*model.Comment)
	return comment, args.Error(1)
}

func (m *MockRepository) Remove(ctx context.Context, postID int64, commentID int64) error {
	args := m.Called(ctx, postID, commentID)
	return args.Error(0)
}
