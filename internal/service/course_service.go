package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	DB         *gorm.DB
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	Storage    *StorageService
	Cache      *Cache
}

func NewCourseService(db *gorm.DB, courseRepo *repository.CourseRepository, moduleRepo *repository.ModuleRepository, storage *StorageService, cache *Cache) *CourseService {
	return &CourseService{
		DB:         db,
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		Storage:    storage,
		Cache:      cache,
	}
}

// ModuleInput describes one module of a course create request. PDF modules
// carry their file; VIDEO and WEBLINK modules carry a URL.
type ModuleInput struct {
	Title       string
	Order       int
	ContentType model.ContentType
	URL         string
	Duration    int
	PageCount   int
	File        *multipart.FileHeader
}

type CreateCourseInput struct {
	Title       string
	Description string
	Status      model.CourseStatus
	Modules     []ModuleInput
}

// UpdateModuleInput is a partial module update. A non-empty ContentType that
// differs from the module's current type triggers an atomic content switch.
type UpdateModuleInput struct {
	Title       *string
	Order       *int
	ContentType model.ContentType
	URL         string
	Duration    int
	PageCount   int
	File        *multipart.FileHeader
}

type CourseUpdateInput struct {
	Title       *string
	Description *string
	Status      *model.CourseStatus
}

// VideoUploadResult is returned by the standalone video upload endpoint; the
// URL feeds a later VIDEO module create.
type VideoUploadResult struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
	Size     int64   `json:"size"`
}

func courseCacheKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}

// validateContent checks that exactly the fields matching the content type
// are present.
func validateContent(contentType model.ContentType, url string, file *multipart.FileHeader) error {
	switch contentType {
	case model.ContentVideo, model.ContentWeblink:
		if !util.IsValidURL(url) {
			return util.ErrInvalidContent
		}
	case model.ContentPDF:
		if file == nil {
			return util.ErrPDFFileRequired
		}
	default:
		return util.ErrInvalidContent
	}
	return nil
}

// storePDF uploads a PDF attachment and returns the stored filename.
func (s *CourseService) storePDF(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimePDF}); err != nil {
		return "", util.ErrInvalidContent
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	stored := util.StoredFilename(file.Filename)
	if _, err := s.Storage.Upload(ctx, stored, src, file.Size, util.MimePDF); err != nil {
		return "", err
	}
	return stored, nil
}

// removeStoredFile deletes an uploaded file, logging failures. File cleanup
// is best-effort and never fails the surrounding operation.
func (s *CourseService) removeStoredFile(ctx context.Context, filename string) {
	if filename == "" {
		return
	}
	if err := s.Storage.Delete(ctx, path.Base(filename)); err != nil {
		logger.Log.Warn("failed to remove uploaded file",
			zap.String("file", filename),
			zap.Error(err),
		)
	}
}

func (s *CourseService) newContentRow(tx *gorm.DB, module *model.Module, contentType model.ContentType, url, filePath, originalName string, duration, pageCount int) error {
	switch contentType {
	case model.ContentVideo:
		return tx.Create(&model.VideoContent{ModuleID: module.ID, URL: url, Duration: duration}).Error
	case model.ContentPDF:
		return tx.Create(&model.PDFContent{ModuleID: module.ID, FilePath: filePath, OriginalName: originalName, PageCount: pageCount}).Error
	case model.ContentWeblink:
		return tx.Create(&model.WebLink{ModuleID: module.ID, URL: url}).Error
	}
	return util.ErrInvalidContent
}

// deleteContentRows removes every content row of a module and returns the
// stored PDF filename, if any, so the caller can clean the file up after the
// transaction commits.
func deleteContentRows(tx *gorm.DB, module *model.Module) (pdfFile string, err error) {
	if module.PDFContent != nil {
		pdfFile = module.PDFContent.FilePath
	}
	for _, m := range []interface{}{&model.VideoContent{}, &model.PDFContent{}, &model.WebLink{}} {
		if err := tx.Where("module_id = ?", module.ID).Delete(m).Error; err != nil {
			return "", err
		}
	}
	return pdfFile, nil
}

// CreateCourse creates a course with its modules and content in one
// transaction. PDF attachments are uploaded first; if the transaction fails
// the stored files are removed again.
func (s *CourseService) CreateCourse(ctx context.Context, tutor *model.User, input CreateCourseInput) (*model.Course, error) {
	pdfCount := 0
	for _, m := range input.Modules {
		if m.Order < 0 {
			return nil, util.ErrInvalidOrder
		}
		if err := validateContent(m.ContentType, m.URL, m.File); err != nil {
			return nil, err
		}
		if m.ContentType == model.ContentPDF {
			pdfCount++
		}
	}
	if pdfCount > util.MaxCoursePDFFiles {
		return nil, util.ErrInvalidContent
	}

	storedFiles := make(map[int]string)
	cleanup := func() {
		for _, f := range storedFiles {
			s.removeStoredFile(ctx, f)
		}
	}
	for i, m := range input.Modules {
		if m.ContentType != model.ContentPDF {
			continue
		}
		stored, err := s.storePDF(ctx, m.File)
		if err != nil {
			cleanup()
			return nil, err
		}
		storedFiles[i] = stored
	}

	course := &model.Course{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		TutorID:     tutor.ID,
	}
	if course.Status == "" {
		course.Status = model.CourseActive
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		for i, m := range input.Modules {
			module := &model.Module{
				CourseID:    course.ID,
				Title:       m.Title,
				Order:       m.Order,
				ContentType: m.ContentType,
			}
			if err := tx.Create(module).Error; err != nil {
				return err
			}

			originalName := ""
			if m.File != nil {
				originalName = m.File.Filename
			}
			if err := s.newContentRow(tx, module, m.ContentType, m.URL, storedFiles[i], originalName, m.Duration, m.PageCount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	return s.CourseRepo.FindWithModules(s.DB, course.ID)
}

// FetchCourse returns a course with ordered modules and their content,
// served from cache when possible.
func (s *CourseService) FetchCourse(ctx context.Context, id uint) (*model.Course, error) {
	var cached model.Course
	if s.Cache.Get(ctx, courseCacheKey(id), &cached) {
		return &cached, nil
	}

	course, err := s.CourseRepo.FindWithModules(s.DB, id)
	if err != nil {
		return nil, asNotFound(err, util.ErrCourseNotFound)
	}

	s.Cache.Set(ctx, courseCacheKey(id), course, courseCacheTTL)
	return course, nil
}

func (s *CourseService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.ListAll()
}

func (s *CourseService) ListByTutor(tutorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByTutor(tutorID)
}

// UpdateCourse applies a partial update of title, description and status.
func (s *CourseService) UpdateCourse(ctx context.Context, caller *model.User, courseID uint, input CourseUpdateInput) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, course.TutorID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil && *input.Title != course.Title {
		fields["title"] = *input.Title
	}
	if input.Description != nil && *input.Description != course.Description {
		fields["description"] = *input.Description
	}
	if input.Status != nil && *input.Status != course.Status {
		fields["status"] = *input.Status
	}
	if len(fields) == 0 {
		return nil, util.ErrNoFieldsToUpdate
	}

	if err := s.CourseRepo.UpdateFields(courseID, fields); err != nil {
		return nil, err
	}
	s.Cache.Del(ctx, courseCacheKey(courseID))

	return s.CourseRepo.FindByID(courseID)
}

// UpdateModule patches a module. When the content type changes, the new
// content row is created and the old one deleted inside one transaction; an
// orphaned PDF file is removed from storage only after the commit.
func (s *CourseService) UpdateModule(ctx context.Context, caller *model.User, moduleID uint, input UpdateModuleInput) (*model.Course, error) {
	module, err := s.ModuleRepo.FindWithContent(s.DB, moduleID)
	if err != nil {
		return nil, asNotFound(err, util.ErrModuleNotFound)
	}

	tutorID, err := s.CourseRepo.TutorIDOf(module.CourseID)
	if err != nil {
		return nil, asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, tutorID); err != nil {
		return nil, err
	}

	if input.Order != nil && *input.Order < 0 {
		return nil, util.ErrInvalidOrder
	}

	switching := input.ContentType != "" && input.ContentType != module.ContentType

	var newPDF string
	if (switching && input.ContentType == model.ContentPDF) ||
		(!switching && module.ContentType == model.ContentPDF && input.File != nil) {
		if input.File == nil {
			return nil, util.ErrPDFFileRequired
		}
		if newPDF, err = s.storePDF(ctx, input.File); err != nil {
			return nil, err
		}
	}
	if switching && input.ContentType != model.ContentPDF {
		if err := validateContent(input.ContentType, input.URL, nil); err != nil {
			s.removeStoredFile(ctx, newPDF)
			return nil, err
		}
	}

	var obsoletePDF string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{}
		if input.Title != nil {
			fields["title"] = *input.Title
		}
		if input.Order != nil {
			fields["order"] = *input.Order
		}

		if switching {
			old, err := deleteContentRows(tx, module)
			if err != nil {
				return err
			}
			obsoletePDF = old

			originalName := ""
			if input.File != nil {
				originalName = input.File.Filename
			}
			if err := s.newContentRow(tx, module, input.ContentType, input.URL, newPDF, originalName, input.Duration, input.PageCount); err != nil {
				return err
			}
			fields["content_type"] = input.ContentType
		} else {
			switch module.ContentType {
			case model.ContentVideo:
				if module.VideoContent == nil {
					return util.ErrInvalidContent
				}
				updates := map[string]interface{}{}
				if input.URL != "" {
					if !util.IsValidURL(input.URL) {
						return util.ErrInvalidContent
					}
					updates["url"] = input.URL
				}
				if input.Duration > 0 {
					updates["duration"] = input.Duration
				}
				if len(updates) > 0 {
					if err := tx.Model(module.VideoContent).Updates(updates).Error; err != nil {
						return err
					}
				}
			case model.ContentPDF:
				if module.PDFContent == nil {
					return util.ErrInvalidContent
				}
				if newPDF != "" {
					obsoletePDF = module.PDFContent.FilePath
					updates := map[string]interface{}{
						"file_path":     newPDF,
						"original_name": input.File.Filename,
					}
					if input.PageCount > 0 {
						updates["page_count"] = input.PageCount
					}
					if err := tx.Model(module.PDFContent).Updates(updates).Error; err != nil {
						return err
					}
				} else if input.PageCount > 0 {
					if err := tx.Model(module.PDFContent).Update("page_count", input.PageCount).Error; err != nil {
						return err
					}
				}
			case model.ContentWeblink:
				if module.WebLink == nil {
					return util.ErrInvalidContent
				}
				if input.URL != "" {
					if !util.IsValidURL(input.URL) {
						return util.ErrInvalidContent
					}
					if err := tx.Model(module.WebLink).Update("url", input.URL).Error; err != nil {
						return err
					}
				}
			}
		}

		if len(fields) > 0 {
			if err := tx.Model(&model.Module{}).Where("id = ?", module.ID).Updates(fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.removeStoredFile(ctx, newPDF)
		return nil, err
	}

	s.removeStoredFile(ctx, obsoletePDF)
	s.Cache.Del(ctx, courseCacheKey(module.CourseID))

	return s.CourseRepo.FindWithModules(s.DB, module.CourseID)
}

// DeleteModule removes a module with its content and re-sequences the
// remaining modules of the course to a dense 1..N ordering.
func (s *CourseService) DeleteModule(ctx context.Context, caller *model.User, moduleID uint) error {
	module, err := s.ModuleRepo.FindWithContent(s.DB, moduleID)
	if err != nil {
		return asNotFound(err, util.ErrModuleNotFound)
	}

	tutorID, err := s.CourseRepo.TutorIDOf(module.CourseID)
	if err != nil {
		return asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, tutorID); err != nil {
		return err
	}

	var obsoletePDF string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		old, err := deleteContentRows(tx, module)
		if err != nil {
			return err
		}
		obsoletePDF = old

		if err := tx.Delete(&model.Module{}, module.ID).Error; err != nil {
			return err
		}

		remaining, err := s.ModuleRepo.ListByCourse(tx, module.CourseID)
		if err != nil {
			return err
		}
		for i, m := range remaining {
			if m.Order == i+1 {
				continue
			}
			if err := tx.Model(&model.Module{}).Where("id = ?", m.ID).Update("order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.removeStoredFile(ctx, obsoletePDF)
	s.Cache.Del(ctx, courseCacheKey(module.CourseID))
	return nil
}

// DeleteCourse removes a course with its modules, content, enrollments and
// uploaded files. Admins may delete any course.
func (s *CourseService) DeleteCourse(ctx context.Context, caller *model.User, courseID uint) error {
	tutorID, err := s.CourseRepo.TutorIDOf(courseID)
	if err != nil {
		return asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, tutorID); err != nil {
		return err
	}

	var obsoleteFiles []string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		modules, err := s.ModuleRepo.ListByCourse(tx, courseID)
		if err != nil {
			return err
		}

		moduleIDs := make([]uint, 0, len(modules))
		for _, m := range modules {
			moduleIDs = append(moduleIDs, m.ID)
		}

		if len(moduleIDs) > 0 {
			var pdfs []model.PDFContent
			if err := tx.Where("module_id IN ?", moduleIDs).Find(&pdfs).Error; err != nil {
				return err
			}
			for _, p := range pdfs {
				obsoleteFiles = append(obsoleteFiles, p.FilePath)
			}

			for _, m := range []interface{}{&model.VideoContent{}, &model.PDFContent{}, &model.WebLink{}} {
				if err := tx.Where("module_id IN ?", moduleIDs).Delete(m).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("course_id = ?", courseID).Delete(&model.Module{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, courseID).Error
	})
	if err != nil {
		return err
	}

	for _, f := range obsoleteFiles {
		s.removeStoredFile(ctx, f)
	}
	s.Cache.Del(ctx, courseCacheKey(courseID))
	return nil
}

// ReorderModules applies a full new ordering for a course's modules. The id
// list must cover exactly the course's modules.
func (s *CourseService) ReorderModules(ctx context.Context, caller *model.User, courseID uint, moduleIDs []uint) error {
	tutorID, err := s.CourseRepo.TutorIDOf(courseID)
	if err != nil {
		return asNotFound(err, util.ErrCourseNotFound)
	}
	if err := requireOwner(caller, tutorID); err != nil {
		return err
	}

	modules, err := s.ModuleRepo.ListByCourse(s.DB, courseID)
	if err != nil {
		return err
	}
	if len(modules) != len(moduleIDs) {
		return util.ErrInvalidOrder
	}
	known := make(map[uint]bool, len(modules))
	for _, m := range modules {
		known[m.ID] = true
	}
	for _, id := range moduleIDs {
		if !known[id] {
			return util.ErrModuleNotFound
		}
		delete(known, id)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range moduleIDs {
			if err := tx.Model(&model.Module{}).Where("id = ?", id).Update("order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Cache.Del(ctx, courseCacheKey(courseID))
	return nil
}

// UploadVideo stores a video file and probes it for duration. The returned
// URL is later attached to a VIDEO module.
func (s *CourseService) UploadVideo(ctx context.Context, file *multipart.FileHeader) (*VideoUploadResult, error) {
	if !util.HasAllowedExtension(file.Filename, util.AllowedVideoExtensions) {
		return nil, util.ErrInvalidContent
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		return nil, util.ErrInvalidContent
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}

	stored := util.StoredFilename(file.Filename)
	url, err := s.Storage.Upload(ctx, stored, src, file.Size, util.MimeVideo+"mp4")
	if err != nil {
		return nil, err
	}

	result := &VideoUploadResult{URL: url, Size: file.Size}

	// Probing needs a local file; remote storage skips duration detection.
	if localPath := s.Storage.LocalPath(stored); localPath != "" {
		info, err := util.GetVideoInfo(localPath)
		if err != nil {
			logger.Log.Warn("video probe failed", zap.String("file", stored), zap.Error(err))
		} else {
			result.Duration = info.Duration
			result.Size = info.Size
		}
	}
	return result, nil
}
