package service

import (
	"context"
	"io"
	"strings"

	"todoapi/internal/model"
	"todoapi/internal/repo"
	"todoapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.TodoRepository
type mockTodoRepo struct{ mock.Mock }

func (m *mockTodoRepo) ListWithFileCount(ctx context.Context, userID int64) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	if t, ok := args.Get(0).([]model.Todo); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	return m.Called(ctx, todo).Error(0)
}

func (m *mockTodoRepo) GetByID(ctx context.Context, userID, id int64) (*model.Todo, error) {
	args := m.Called(ctx, userID, id)
	if t, ok := args.Get(0).(*model.Todo); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoRepo) GetByIDWithFiles(ctx context.Context, userID, id int64) (*model.Todo, error) {
	args := m.Called(ctx, userID, id)
	if t, ok := args.Get(0).(*model.Todo); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoRepo) Save(ctx context.Context, todo *model.Todo) error {
	return m.Called(ctx, todo).Error(0)
}

func (m *mockTodoRepo) Delete(ctx context.Context, todo *model.Todo) error {
	return m.Called(ctx, todo).Error(0)
}

var _ repo.TodoRepository = (*mockTodoRepo)(nil)

// мок для repo.FileRepository
type mockFileRepo struct{ mock.Mock }

func (m *mockFileRepo) Create(ctx context.Context, file *model.File) error {
	return m.Called(ctx, file).Error(0)
}

var _ repo.FileRepository = (*mockFileRepo)(nil)

// мок для storage.Storage
type mockStorage struct{ mock.Mock }

func (m *mockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	_, _ = io.Copy(io.Discard, r)
	args := m.Called(ctx, key, opt)
	return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}, args.Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

var _ storage.Storage = (*mockStorage)(nil)

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) Issue(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

// pngBytes — минимальная сигнатура PNG, её достаточно для определения типа.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func memUpload(name, contentType string, data []byte) Upload {
	return Upload{
		ClientName:  name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(string(data))), nil
		},
	}
}
