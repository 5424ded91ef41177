package lessongorm

import (
	"github.com/oggyb/lessons-api/internal/domain/lesson"
)

// toDomain maps a GORM LessonModel to a domain-level Lesson.
func toDomain(m *LessonModel) *lesson.Lesson {
	return &lesson.Lesson{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		Free:      m.Free,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDomainMany(models []LessonModel) []*lesson.Lesson {
	out := make([]*lesson.Lesson, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

// fromDomain maps a domain-level Lesson to a GORM LessonModel.
func fromDomain(d *lesson.Lesson) *LessonModel {
	return &LessonModel{
		ID:        d.ID,
		Title:     d.Title,
		Body:      d.Body,
		Free:      d.Free,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
