package mocks

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// MemoryStore is an in-memory stand-in for the Mongo collections. All repos
// built from one store share state, so cross-collection operations such as
// the enrollment transaction and the course cascade behave as in Mongo.
type MemoryStore struct {
	mu sync.Mutex

	users             map[string]*entity.User
	tokens            map[string]*entity.Token
	courses           map[string]*entity.Course
	lessons           map[string]*entity.Lesson
	courseEnrollments map[string]*entity.Enrollment
	enrollmentIndex   map[string]*entity.EnrollmentIndex
	progress          map[string]*entity.UserProgress
	certificates      map[string]*entity.Certificate
	activities        []*entity.Activity
	products          map[string]*entity.Product
	contacts          []*entity.ContactSubmission
	snapshots         []*entity.StatsSnapshot

	// FailCascade makes DeleteCourseCascade fail before touching anything.
	FailCascade bool
	// KeepCourseOnDelete makes the cascade report success but leave the course.
	KeepCourseOnDelete bool
	// FailSetDownloadURL makes the second certificate write fail.
	FailSetDownloadURL bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:             map[string]*entity.User{},
		tokens:            map[string]*entity.Token{},
		courses:           map[string]*entity.Course{},
		lessons:           map[string]*entity.Lesson{},
		courseEnrollments: map[string]*entity.Enrollment{},
		enrollmentIndex:   map[string]*entity.EnrollmentIndex{},
		progress:          map[string]*entity.UserProgress{},
		certificates:      map[string]*entity.Certificate{},
		products:          map[string]*entity.Product{},
	}
}

func (s *MemoryStore) Users() *UserRepo               { return &UserRepo{s} }
func (s *MemoryStore) Tokens() *TokenRepo             { return &TokenRepo{s} }
func (s *MemoryStore) Courses() *CourseRepo           { return &CourseRepo{s} }
func (s *MemoryStore) Lessons() *LessonRepo           { return &LessonRepo{s} }
func (s *MemoryStore) Enrollments() *EnrollmentRepo   { return &EnrollmentRepo{s} }
func (s *MemoryStore) Certificates() *CertificateRepo { return &CertificateRepo{s} }
func (s *MemoryStore) Activities() *ActivityRepo      { return &ActivityRepo{s} }
func (s *MemoryStore) Products() *ProductRepo         { return &ProductRepo{s} }
func (s *MemoryStore) Stats() *StatsRepo              { return &StatsRepo{s} }
func (s *MemoryStore) Contacts() *ContactRepo         { return &ContactRepo{s} }

// EnrollmentIndexCount returns the number of root index documents for a course.
func (s *MemoryStore) EnrollmentIndexCount(courseID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, idx := range s.enrollmentIndex {
		if idx.CourseID == courseID {
			n++
		}
	}
	return n
}

// ProgressCount returns the number of user_progress documents for a course.
func (s *MemoryStore) ProgressCount(courseID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.progress {
		if p.CourseID == courseID {
			n++
		}
	}
	return n
}

func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return items
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ---- users ----

type UserRepo struct{ s *MemoryStore }

var _ contract.IUserRepository = (*UserRepo)(nil)

func (r *UserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return contract.ErrDuplicate
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, contract.ErrNotFound
}

func (r *UserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *UserRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *UserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepo) UpdateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return nil, contract.ErrNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (r *UserRepo) UpdateUserPassword(_ context.Context, id, hashedPassword string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return contract.ErrNotFound
	}
	u.PasswordHash = hashedPassword
	return nil
}

func (r *UserRepo) ListUsers(_ context.Context, page, pageSize int) ([]*entity.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, page, pageSize), int64(len(all)), nil
}

// ---- tokens ----

type TokenRepo struct{ s *MemoryStore }

var _ contract.ITokenRepository = (*TokenRepo)(nil)

func (r *TokenRepo) CreateToken(_ context.Context, token *entity.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *token
	r.s.tokens[token.ID] = &cp
	return nil
}

func (r *TokenRepo) GetTokenByID(_ context.Context, id string) (*entity.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tokens[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, contract.ErrNotFound
}

func (r *TokenRepo) GetTokenByUserID(_ context.Context, userID string, tokenType entity.TokenType) (*entity.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *entity.Token
	for _, t := range r.s.tokens {
		if t.UserID == userID && t.TokenType == tokenType && !t.Revoke {
			if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
				latest = t
			}
		}
	}
	if latest == nil {
		return nil, contract.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *TokenRepo) UpdateToken(_ context.Context, tokenID, tokenHash string, expiry time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[tokenID]
	if !ok {
		return contract.ErrNotFound
	}
	t.TokenHash = tokenHash
	t.ExpiresAt = expiry
	return nil
}

func (r *TokenRepo) GetTokenByVerifier(_ context.Context, verifier string) (*entity.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if verifier != "" && t.Verifier == verifier {
			cp := *t
			return &cp, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *TokenRepo) RevokeToken(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok {
		return contract.ErrNotFound
	}
	t.Revoke = true
	return nil
}

func (r *TokenRepo) RevokeAllTokensForUser(_ context.Context, userID string, tokenType entity.TokenType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.UserID == userID && t.TokenType == tokenType {
			t.Revoke = true
		}
	}
	return nil
}

// ---- courses ----

type CourseRepo struct{ s *MemoryStore }

var _ contract.ICourseRepository = (*CourseRepo)(nil)

func (r *CourseRepo) CreateCourse(_ context.Context, course *entity.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.courses {
		if c.Slug == course.Slug {
			return contract.ErrDuplicate
		}
	}
	cp := *course
	r.s.courses[course.ID] = &cp
	return nil
}

func (r *CourseRepo) GetCourseByID(_ context.Context, id string) (*entity.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, contract.ErrNotFound
}

func (r *CourseRepo) GetCourseBySlug(_ context.Context, slug string) (*entity.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.courses {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *CourseRepo) ListCourses(_ context.Context, opts *contract.CourseFilterOptions) ([]*entity.Course, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Course
	for _, c := range r.s.courses {
		if opts.Status != nil && c.Status != *opts.Status {
			continue
		}
		if opts.Category != nil && c.Category != *opts.Category {
			continue
		}
		if opts.Level != nil && c.Level != *opts.Level {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(opts.Search)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, opts.Page, opts.PageSize), int64(len(out)), nil
}

func (r *CourseRepo) UpdateCourse(_ context.Context, id string, updates map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return contract.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "title":
			c.Title = v.(string)
		case "description":
			c.Description = v.(string)
		case "category":
			c.Category = v.(string)
		case "level":
			c.Level = v.(entity.CourseLevel)
		case "price":
			c.Price = v.(float64)
		case "status":
			c.Status = v.(entity.CourseStatus)
		case "sections":
			c.Sections = v.([]entity.CourseSection)
		case "thumbnail_url":
			c.ThumbnailURL = v.(string)
		case "updated_at":
			c.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *CourseRepo) DeleteCourseCascade(_ context.Context, courseID string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailCascade {
		return nil, errors.New("transaction aborted")
	}
	removed := map[string]int64{}
	for k, e := range r.s.courseEnrollments {
		if e.CourseID == courseID {
			delete(r.s.courseEnrollments, k)
			removed[contract.CascadeCourseEnrollments]++
		}
	}
	for k, l := range r.s.lessons {
		if l.CourseID == courseID {
			delete(r.s.lessons, k)
			removed[contract.CascadeLessons]++
		}
	}
	for k, p := range r.s.progress {
		if p.CourseID == courseID {
			delete(r.s.progress, k)
			removed[contract.CascadeUserProgress]++
		}
	}
	for k, idx := range r.s.enrollmentIndex {
		if idx.CourseID == courseID {
			delete(r.s.enrollmentIndex, k)
			removed[contract.CascadeEnrollments]++
		}
	}
	for k, c := range r.s.certificates {
		if c.CourseID == courseID {
			delete(r.s.certificates, k)
			removed[contract.CascadeCertificates]++
		}
	}
	if !r.s.KeepCourseOnDelete {
		if _, ok := r.s.courses[courseID]; ok {
			delete(r.s.courses, courseID)
			removed[contract.CascadeCourse]++
		}
	}
	return removed, nil
}

// ---- lessons ----

type LessonRepo struct{ s *MemoryStore }

var _ contract.ILessonRepository = (*LessonRepo)(nil)

func (r *LessonRepo) CreateLesson(_ context.Context, lesson *entity.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *lesson
	r.s.lessons[lesson.ID] = &cp
	return nil
}

func (r *LessonRepo) ListLessons(_ context.Context, courseID string) ([]*entity.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Lesson{}
	for _, l := range r.s.lessons {
		if l.CourseID == courseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// ---- enrollments ----

type EnrollmentRepo struct{ s *MemoryStore }

var _ contract.IEnrollmentRepository = (*EnrollmentRepo)(nil)

// CreateEnrollmentTx applies all writes under the store lock, which gives the
// same all-or-nothing outcome as the Mongo transaction.
func (r *EnrollmentRepo) CreateEnrollmentTx(_ context.Context, enrollment *entity.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courseEnrollments[enrollment.ID]; ok {
		return contract.ErrDuplicate
	}
	course, ok := r.s.courses[enrollment.CourseID]
	if !ok {
		return contract.ErrNotFound
	}
	cp := *enrollment
	r.s.courseEnrollments[enrollment.ID] = &cp
	r.s.enrollmentIndex[enrollment.ID] = &entity.EnrollmentIndex{
		ID:         enrollment.ID,
		UserID:     enrollment.UserID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
	}
	course.StudentCount++
	return nil
}

func (r *EnrollmentRepo) GetEnrollment(_ context.Context, courseID, userID string) (*entity.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.courseEnrollments[entity.EnrollmentKey(courseID, userID)]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, contract.ErrNotFound
}

func (r *EnrollmentRepo) list(match func(*entity.Enrollment) bool) []*entity.Enrollment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Enrollment{}
	for _, e := range r.s.courseEnrollments {
		if match(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt.After(out[j].EnrolledAt) })
	return out
}

func (r *EnrollmentRepo) ListByUser(_ context.Context, userID string) ([]*entity.Enrollment, error) {
	return r.list(func(e *entity.Enrollment) bool { return e.UserID == userID }), nil
}

func (r *EnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]*entity.Enrollment, error) {
	return r.list(func(e *entity.Enrollment) bool { return e.CourseID == courseID }), nil
}

// CompleteLessonTx holds the store lock across the read and the write, as
// the Mongo transaction does for a single enrollment.
func (r *EnrollmentRepo) CompleteLessonTx(_ context.Context, progress *entity.UserProgress, hoursSpent float64, totalLessons int) (*entity.Enrollment, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := entity.EnrollmentKey(progress.CourseID, progress.UserID)
	stored, ok := r.s.courseEnrollments[key]
	if !ok {
		return nil, false, contract.ErrNotFound
	}
	cp := *stored
	cp.CompletedLessons = append([]string(nil), stored.CompletedLessons...)
	newLesson, justCompleted := cp.CompleteLesson(progress.LessonID, hoursSpent, totalLessons, progress.CompletedAt)
	if newLesson {
		p := *progress
		r.s.progress[progress.ID] = &p
	}
	r.s.courseEnrollments[key] = &cp
	out := cp
	out.CompletedLessons = append([]string(nil), cp.CompletedLessons...)
	return &out, justCompleted, nil
}

// ---- certificates ----

type CertificateRepo struct{ s *MemoryStore }

var _ contract.ICertificateRepository = (*CertificateRepo)(nil)

func (r *CertificateRepo) CreateCertificate(_ context.Context, cert *entity.Certificate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.certificates {
		if c.VerificationCode == cert.VerificationCode {
			return contract.ErrDuplicateCode
		}
		if c.UserID == cert.UserID && c.CourseID == cert.CourseID {
			return contract.ErrDuplicate
		}
	}
	cp := *cert
	r.s.certificates[cert.ID] = &cp
	return nil
}

func (r *CertificateRepo) SetDownloadURL(_ context.Context, id, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailSetDownloadURL {
		return errors.New("write failed")
	}
	c, ok := r.s.certificates[id]
	if !ok {
		return contract.ErrNotFound
	}
	c.DownloadURL = url
	return nil
}

func (r *CertificateRepo) find(match func(*entity.Certificate) bool) (*entity.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.certificates {
		if match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *CertificateRepo) GetByID(_ context.Context, id string) (*entity.Certificate, error) {
	return r.find(func(c *entity.Certificate) bool { return c.ID == id })
}

func (r *CertificateRepo) GetByVerificationCode(_ context.Context, code string) (*entity.Certificate, error) {
	return r.find(func(c *entity.Certificate) bool { return c.VerificationCode == code })
}

func (r *CertificateRepo) GetByUserAndCourse(_ context.Context, userID, courseID string) (*entity.Certificate, error) {
	return r.find(func(c *entity.Certificate) bool { return c.UserID == userID && c.CourseID == courseID })
}

func (r *CertificateRepo) all(match func(*entity.Certificate) bool) []*entity.Certificate {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Certificate{}
	for _, c := range r.s.certificates {
		if match(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out
}

func (r *CertificateRepo) ListByUser(_ context.Context, userID string) ([]*entity.Certificate, error) {
	return r.all(func(c *entity.Certificate) bool { return c.UserID == userID }), nil
}

func (r *CertificateRepo) List(_ context.Context, page, pageSize int) ([]*entity.Certificate, int64, error) {
	all := r.all(func(*entity.Certificate) bool { return true })
	return paginate(all, page, pageSize), int64(len(all)), nil
}

func (r *CertificateRepo) SetRevocation(_ context.Context, id, reason string, revokedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.certificates[id]
	if !ok {
		return contract.ErrNotFound
	}
	if revokedAt == nil {
		c.IsRevoked = false
		c.RevocationReason = ""
		c.RevokedAt = nil
		return nil
	}
	t := *revokedAt
	c.IsRevoked = true
	c.RevocationReason = reason
	c.RevokedAt = &t
	return nil
}

// ---- activities ----

type ActivityRepo struct{ s *MemoryStore }

var _ contract.IActivityRepository = (*ActivityRepo)(nil)

func (r *ActivityRepo) CreateActivity(_ context.Context, activity *entity.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *activity
	r.s.activities = append(r.s.activities, &cp)
	return nil
}

func (r *ActivityRepo) ListRecent(_ context.Context, limit int) ([]*entity.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Activity{}
	for i := len(r.s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.s.activities[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ---- products ----

type ProductRepo struct{ s *MemoryStore }

var _ contract.IProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) CreateProduct(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) GetProductByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, contract.ErrNotFound
}

func (r *ProductRepo) ListProducts(_ context.Context, opts *contract.ProductFilterOptions) ([]*entity.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range r.s.products {
		if opts.Category != nil && p.Category != *opts.Category {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, opts.Page, opts.PageSize), int64(len(out)), nil
}

func (r *ProductRepo) UpdateProduct(_ context.Context, id string, updates map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return contract.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "price":
			p.Price = v.(float64)
		case "category":
			p.Category = v.(string)
		case "stock":
			p.Stock = v.(int)
		case "features":
			p.Features = v.([]string)
		case "image_url":
			p.ImageURL = v.(string)
		case "updated_at":
			p.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *ProductRepo) DeleteProduct(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return contract.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ---- stats & contact ----

type StatsRepo struct{ s *MemoryStore }

var _ contract.IStatsRepository = (*StatsRepo)(nil)

func (r *StatsRepo) CountAll(_ context.Context) (*entity.DashboardStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return &entity.DashboardStats{
		Users:        int64(len(r.s.users)),
		Courses:      int64(len(r.s.courses)),
		Enrollments:  int64(len(r.s.enrollmentIndex)),
		Certificates: int64(len(r.s.certificates)),
		Products:     int64(len(r.s.products)),
	}, nil
}

func (r *StatsRepo) SaveSnapshot(_ context.Context, snapshot *entity.StatsSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *snapshot
	r.s.snapshots = append(r.s.snapshots, &cp)
	return nil
}

func (r *StatsRepo) LatestSnapshots(_ context.Context, n int) ([]*entity.StatsSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.StatsSnapshot{}
	for i := len(r.s.snapshots) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.s.snapshots[i])
	}
	return out, nil
}

type ContactRepo struct{ s *MemoryStore }

var _ contract.IContactRepository = (*ContactRepo)(nil)

func (r *ContactRepo) CreateSubmission(_ context.Context, submission *entity.ContactSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *submission
	r.s.contacts = append(r.s.contacts, &cp)
	return nil
}

func (r *ContactRepo) ListSubmissions(_ context.Context, page, pageSize int) ([]*entity.ContactSubmission, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ContactSubmission, 0, len(r.s.contacts))
	for i := len(r.s.contacts) - 1; i >= 0; i-- {
		out = append(out, r.s.contacts[i])
	}
	return paginate(out, page, pageSize), int64(len(out)), nil
}

// UUIDGen returns real v4 uuids.
type UUIDGen struct{}

func (UUIDGen) NewUUID() string { return uuid.NewString() }
