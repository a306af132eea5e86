// Package service 实现业务逻辑层
package service

import (
	"context"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/pkg/code"
	"github.com/jamwt/anon-notes-service/pkg/logger"

	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Create 在指定身份名下创建笔记
	Create(ctx context.Context, owner int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// List 按写入顺序获取指定身份名下的全部笔记
	List(ctx context.Context, owner int64) ([]*dto.NoteDTO, int, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	logger   *zap.Logger
	config   *ServiceConfig
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, logger *zap.Logger, config *ServiceConfig) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		logger:   logger,
		config:   config,
	}
}

// Create 在指定身份名下创建笔记
func (s *noteService) Create(ctx context.Context, owner int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	if max := s.config.Note.MaxLength; max > 0 && len(params.Note) > max {
		return nil, code.ErrorInvalidParams.WithDetails("note exceeds max length")
	}

	note, err := s.noteRepo.Create(ctx, &domain.Note{
		Owner: owner,
		Note:  params.Note,
	})
	if err != nil {
		s.logger.Error("create note failed",
			zap.Int64(logger.FieldUserID, owner),
			zap.Error(err))
		return nil, code.ErrorDBQuery
	}
	return toNoteDTO(note), nil
}

// List 按写入顺序获取指定身份名下的全部笔记
func (s *noteService) List(ctx context.Context, owner int64) ([]*dto.NoteDTO, int, error) {
	notes, err := s.noteRepo.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.Error("list notes failed",
			zap.Int64(logger.FieldUserID, owner),
			zap.Error(err))
		return nil, 0, code.ErrorDBQuery
	}

	list := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		list = append(list, toNoteDTO(n))
	}
	return list, len(list), nil
}
