package mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{})   {}
func (NopLogger) Infof(string, ...interface{})    {}
func (NopLogger) Warnf(string, ...interface{})    {}
func (NopLogger) Warningf(string, ...interface{}) {}
func (NopLogger) Errorf(string, ...interface{})   {}
func (NopLogger) Fatalf(string, ...interface{})   {}

// PlainHasher prefixes instead of hashing so tests stay fast.
type PlainHasher struct{}

var _ contract.IHasher = PlainHasher{}

func (PlainHasher) HashPassword(p string) (string, error) { return "hashed:" + p, nil }
func (PlainHasher) ComparePasswordHash(p, h string) error {
	if h != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}
func (PlainHasher) HashString(s string) string    { return "sha:" + s }
func (PlainHasher) CheckHash(s, hash string) bool { return hash == "sha:"+s }

// SeqRandom returns predictable tokens.
type SeqRandom struct {
	mu sync.Mutex
	n  int
}

func (r *SeqRandom) GenerateRandomToken(n int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	return fmt.Sprintf("tok%d-%d", n, r.n), nil
}

// FakeJWT encodes the user id and role in the token string.
type FakeJWT struct{}

func (FakeJWT) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	return "access|" + userID + "|" + string(role) + "|" + uuid.NewString(), nil
}

func (FakeJWT) GenerateRefreshToken(userID string, role entity.UserRole) (string, error) {
	return "refresh|" + userID + "|" + string(role) + "|" + uuid.NewString(), nil
}

func parseFake(kind, token string) (*entity.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != kind {
		return nil, errors.New("malformed token")
	}
	return &entity.Claims{UserID: parts[1], Role: entity.UserRole(parts[2])}, nil
}

func (FakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	return parseFake("access", token)
}

func (FakeJWT) ParseRefreshToken(token string) (*entity.Claims, error) {
	return parseFake("refresh", token)
}

// SentEmail is one message captured by RecordingMailer.
type SentEmail struct {
	To, Subject, Body string
}

type RecordingMailer struct {
	mu         sync.Mutex
	Sent       []SentEmail
	ShouldFail bool
}

func (m *RecordingMailer) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errors.New("smtp unavailable")
	}
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *RecordingMailer) Last() (SentEmail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentEmail{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

// URLRenderer returns a fixed download location per certificate.
type URLRenderer struct {
	BaseURL    string
	ShouldFail bool
}

func (r URLRenderer) Render(_ context.Context, cert *entity.Certificate) (string, error) {
	if r.ShouldFail {
		return "", errors.New("render failed")
	}
	return fmt.Sprintf("%s/api/v1/certificates/%s/download", r.BaseURL, cert.ID), nil
}

// FixedUUIDGen hands out the queued ids first, then random ones. It is used
// to force verification-code collisions.
type FixedUUIDGen struct {
	mu    sync.Mutex
	Queue []string
}

func (g *FixedUUIDGen) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Queue) > 0 {
		id := g.Queue[0]
		g.Queue = g.Queue[1:]
		return id
	}
	return uuid.NewString()
}

// MemoryCache implements contract.ICourseCache without expiry.
type MemoryCache struct {
	mu      sync.Mutex
	courses map[string]*entity.Course
	stats   *entity.DashboardStats
}

var _ contract.ICourseCache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{courses: map[string]*entity.Course{}}
}

func (c *MemoryCache) GetCourse(_ context.Context, ref string) (*entity.Course, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	course, ok := c.courses[ref]
	if !ok {
		return nil, false, nil
	}
	cp := *course
	return &cp, true, nil
}

func (c *MemoryCache) SetCourse(_ context.Context, course *entity.Course) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *course
	c.courses[course.ID] = &cp
	if course.Slug != "" {
		c.courses[course.Slug] = &cp
	}
	return nil
}

func (c *MemoryCache) InvalidateCourse(_ context.Context, refs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range refs {
		delete(c.courses, r)
	}
	return nil
}

func (c *MemoryCache) GetStats(_ context.Context) (*entity.DashboardStats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return nil, false, nil
	}
	cp := *c.stats
	return &cp, true, nil
}

func (c *MemoryCache) SetStats(_ context.Context, stats *entity.DashboardStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *stats
	c.stats = &cp
	return nil
}

func (c *MemoryCache) InvalidateStats(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	return nil
}

// MemoryFiles implements contract.IFileStorage.
type MemoryFiles struct {
	mu    sync.Mutex
	files map[string][]byte
	info  map[string]*entity.FileInfo
}

var _ contract.IFileStorage = (*MemoryFiles)(nil)

func NewMemoryFiles() *MemoryFiles {
	return &MemoryFiles{files: map[string][]byte{}, info: map[string]*entity.FileInfo{}}
}

func (m *MemoryFiles) Upload(_ context.Context, filename, contentType string, r io.Reader) (string, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.files[id] = data
	m.info[id] = &entity.FileInfo{ID: id, Filename: filename, ContentType: contentType, Size: int64(len(data)), UploadedAt: time.Now()}
	return id, "/api/v1/files/" + id, nil
}

func (m *MemoryFiles) Open(_ context.Context, id string) (io.ReadCloser, *entity.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[id]
	if !ok {
		return nil, nil, contract.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), m.info[id], nil
}

func (m *MemoryFiles) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return contract.ErrNotFound
	}
	delete(m.files, id)
	delete(m.info, id)
	return nil
}

// StaticConfig is a fixed IConfigProvider.
type StaticConfig struct {
	BaseURL           string
	AccessExpiry      time.Duration
	RefreshExpiry     time.Duration
	ResetExpiry       time.Duration
	RequireCompletion bool
	UploadMaxBytes    int64
}

func NewStaticConfig() *StaticConfig {
	return &StaticConfig{
		BaseURL:        "http://localhost:8080",
		AccessExpiry:   15 * time.Minute,
		RefreshExpiry:  24 * time.Hour,
		ResetExpiry:    time.Hour,
		UploadMaxBytes: 5 << 20,
	}
}

func (c *StaticConfig) GetAppBaseURL() string                      { return c.BaseURL }
func (c *StaticConfig) GetAccessTokenExpiry() time.Duration        { return c.AccessExpiry }
func (c *StaticConfig) GetRefreshTokenExpiry() time.Duration       { return c.RefreshExpiry }
func (c *StaticConfig) GetPasswordResetTokenExpiry() time.Duration { return c.ResetExpiry }
func (c *StaticConfig) GetCertificateRequireCompletion() bool      { return c.RequireCompletion }
func (c *StaticConfig) GetUploadMaxBytes() int64                   { return c.UploadMaxBytes }
