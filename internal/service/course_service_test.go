package service

import (
	"context"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourse(t *testing.T, svc *CourseService, tutor *model.User) *model.Course {
	t.Helper()

	course, err := svc.CreateCourse(context.Background(), tutor, CreateCourseInput{
		Title: "Go Basics",
		Modules: []ModuleInput{
			{Title: "Intro", Order: 1, ContentType: model.ContentVideo, URL: "https://cdn.x.com/intro.mp4", Duration: 90},
			{Title: "Reading", Order: 2, ContentType: model.ContentWeblink, URL: "https://go.dev/tour"},
			{Title: "Outro", Order: 3, ContentType: model.ContentWeblink, URL: "https://go.dev/doc"},
		},
	})
	require.NoError(t, err)
	return course
}

func TestCreateCourseWithModules(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")

	course := seedCourse(t, svc, tutor)
	assert.Equal(t, model.CourseActive, course.Status)
	require.Len(t, course.Modules, 3)

	first := course.Modules[0]
	assert.Equal(t, model.ContentVideo, first.ContentType)
	require.NotNil(t, first.VideoContent)
	assert.Equal(t, 90, first.VideoContent.Duration)
	assert.Nil(t, first.PDFContent)
	assert.Nil(t, first.WebLink)

	second := course.Modules[1]
	require.NotNil(t, second.WebLink)
	assert.Equal(t, "https://go.dev/tour", second.WebLink.URL)
}

func TestCreateCourseValidatesContent(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, tutor, CreateCourseInput{
		Title:   "Broken",
		Modules: []ModuleInput{{Title: "M", Order: 1, ContentType: model.ContentPDF}},
	})
	assert.ErrorIs(t, err, util.ErrPDFFileRequired)

	_, err = svc.CreateCourse(ctx, tutor, CreateCourseInput{
		Title:   "Broken",
		Modules: []ModuleInput{{Title: "M", Order: 1, ContentType: model.ContentVideo, URL: "not a url"}},
	})
	assert.ErrorIs(t, err, util.ErrInvalidContent)

	_, err = svc.CreateCourse(ctx, tutor, CreateCourseInput{
		Title:   "Broken",
		Modules: []ModuleInput{{Title: "M", Order: -1, ContentType: model.ContentWeblink, URL: "https://x.com"}},
	})
	assert.ErrorIs(t, err, util.ErrInvalidOrder)

	var count int64
	require.NoError(t, db.Model(&model.Course{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateCourseOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutorA := createUser(t, db, model.Tutor, "a@x.com", "password123")
	tutorB := createUser(t, db, model.Tutor, "b@x.com", "password123")
	course := createCourse(t, db, tutorA, "A's course")
	ctx := context.Background()

	title := "Renamed"
	_, err := svc.UpdateCourse(ctx, tutorB, course.ID, CourseUpdateInput{Title: &title})
	assert.ErrorIs(t, err, util.ErrForbidden)

	updated, err := svc.UpdateCourse(ctx, tutorA, course.ID, CourseUpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	same := "Renamed"
	_, err = svc.UpdateCourse(ctx, tutorA, course.ID, CourseUpdateInput{Title: &same})
	assert.ErrorIs(t, err, util.ErrNoFieldsToUpdate)
}

func TestAdminDeletesAnyCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	admin := createUser(t, db, model.Admin, "admin@x.com", "password123")
	course := seedCourse(t, svc, tutor)
	ctx := context.Background()

	require.NoError(t, svc.DeleteCourse(ctx, admin, course.ID))

	var courses, modules, links int64
	require.NoError(t, db.Model(&model.Course{}).Count(&courses).Error)
	require.NoError(t, db.Model(&model.Module{}).Count(&modules).Error)
	require.NoError(t, db.Model(&model.WebLink{}).Count(&links).Error)
	assert.Zero(t, courses)
	assert.Zero(t, modules)
	assert.Zero(t, links)
}

func TestContentTypeSwitchIsAtomic(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	course := seedCourse(t, svc, tutor)
	videoModule := course.Modules[0]
	ctx := context.Background()

	// A switch with invalid target content leaves the module untouched.
	_, err := svc.UpdateModule(ctx, tutor, videoModule.ID, UpdateModuleInput{
		ContentType: model.ContentWeblink,
		URL:         "not a url",
	})
	assert.ErrorIs(t, err, util.ErrInvalidContent)

	unchanged, err := svc.ModuleRepo.FindWithContent(db, videoModule.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ContentVideo, unchanged.ContentType)
	require.NotNil(t, unchanged.VideoContent)
	assert.Nil(t, unchanged.WebLink)

	// A valid switch ends with exactly one content row of the new type.
	updated, err := svc.UpdateModule(ctx, tutor, videoModule.ID, UpdateModuleInput{
		ContentType: model.ContentWeblink,
		URL:         "https://go.dev/blog",
	})
	require.NoError(t, err)

	switched := updated.Modules[0]
	assert.Equal(t, model.ContentWeblink, switched.ContentType)
	require.NotNil(t, switched.WebLink)
	assert.Nil(t, switched.VideoContent)

	var videos int64
	require.NoError(t, db.Model(&model.VideoContent{}).Where("module_id = ?", videoModule.ID).Count(&videos).Error)
	assert.Zero(t, videos)
}

func TestUpdateModuleOwnershipAndMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutorA := createUser(t, db, model.Tutor, "a@x.com", "password123")
	tutorB := createUser(t, db, model.Tutor, "b@x.com", "password123")
	course := seedCourse(t, svc, tutorA)
	ctx := context.Background()

	title := "Renamed"
	_, err := svc.UpdateModule(ctx, tutorB, course.Modules[0].ID, UpdateModuleInput{Title: &title})
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = svc.UpdateModule(ctx, tutorA, 9999, UpdateModuleInput{Title: &title})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestDeleteModuleResequencesOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	course := seedCourse(t, svc, tutor)
	ctx := context.Background()

	// Remove the middle module; the rest collapse to a dense 1..N.
	require.NoError(t, svc.DeleteModule(ctx, tutor, course.Modules[1].ID))

	remaining, err := svc.ModuleRepo.ListByCourse(db, course.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, 1, remaining[0].Order)
	assert.Equal(t, 2, remaining[1].Order)
	assert.Equal(t, "Intro", remaining[0].Title)
	assert.Equal(t, "Outro", remaining[1].Title)
}

func TestFetchCourseReturnsOrderedModules(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	ctx := context.Background()

	created, err := svc.CreateCourse(ctx, tutor, CreateCourseInput{
		Title: "Ordered",
		Modules: []ModuleInput{
			{Title: "Third", Order: 3, ContentType: model.ContentWeblink, URL: "https://x.com/3"},
			{Title: "First", Order: 1, ContentType: model.ContentWeblink, URL: "https://x.com/1"},
			{Title: "Second", Order: 2, ContentType: model.ContentWeblink, URL: "https://x.com/2"},
		},
	})
	require.NoError(t, err)

	course, err := svc.FetchCourse(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, course.Modules, 3)
	assert.Equal(t, "First", course.Modules[0].Title)
	assert.Equal(t, "Second", course.Modules[1].Title)
	assert.Equal(t, "Third", course.Modules[2].Title)

	_, err = svc.FetchCourse(ctx, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestReorderModules(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	tutor := createUser(t, db, model.Tutor, "tutor@x.com", "password123")
	course := seedCourse(t, svc, tutor)
	ctx := context.Background()

	ids := []uint{course.Modules[2].ID, course.Modules[0].ID, course.Modules[1].ID}
	require.NoError(t, svc.ReorderModules(ctx, tutor, course.ID, ids))

	reordered, err := svc.ModuleRepo.ListByCourse(db, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Outro", reordered[0].Title)
	assert.Equal(t, "Intro", reordered[1].Title)
	assert.Equal(t, "Reading", reordered[2].Title)

	// An incomplete id list is rejected.
	err = svc.ReorderModules(ctx, tutor, course.ID, ids[:2])
	assert.ErrorIs(t, err, util.ErrInvalidOrder)

	// Ids from another course are rejected.
	other := createCourse(t, db, tutor, "Other")
	err = svc.ReorderModules(ctx, tutor, other.ID, ids)
	assert.ErrorIs(t, err, util.ErrInvalidOrder)
}
