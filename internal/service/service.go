// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/pkg/timex"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Note NoteServiceConfig // Note related config // 笔记相关配置
}

// NoteServiceConfig note service configuration
// NoteServiceConfig 笔记服务配置
type NoteServiceConfig struct {
	MaxLength int // Max note length in bytes, 0 for unlimited // 单条笔记最大字节数，0 表示不限制
}

// toIdentityDTO 将身份领域模型转换为 DTO
func toIdentityDTO(identity *domain.UserIdentity) *dto.UserIdentityDTO {
	if identity == nil {
		return nil
	}
	return &dto.UserIdentityDTO{
		ID:        identity.ID,
		Kind:      string(identity.Kind),
		CreatedAt: timex.Time(identity.CreatedAt),
	}
}

// toNoteDTO 将笔记领域模型转换为 DTO
func toNoteDTO(note *domain.Note) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	return &dto.NoteDTO{
		ID:        note.ID,
		Note:      note.Note,
		CreatedAt: timex.Time(note.CreatedAt),
	}
}
