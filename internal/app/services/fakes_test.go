package services

import (
	"context"
	"sort"
	"time"

	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/db"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/auth"
)

// fakeTx runs the function without a real transaction
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	return fn(ctx, nil)
}

type fakeCenterRepo struct {
	nextID  int64
	centers map[int64]*models.TrainingCenter
	updates int
}

func newFakeCenterRepo(centers ...*models.TrainingCenter) *fakeCenterRepo {
	r := &fakeCenterRepo{centers: map[int64]*models.TrainingCenter{}}
	for _, c := range centers {
		r.centers[c.ID] = c
		r.nextID = max(r.nextID, c.ID)
	}
	return r
}

func (r *fakeCenterRepo) CreateTrainingCenter(_ context.Context, center *models.TrainingCenter) error {
	r.nextID++
	center.ID = r.nextID
	c := *center
	r.centers[c.ID] = &c
	return nil
}

func (r *fakeCenterRepo) GetTrainingCenterByID(_ context.Context, id int64) (*models.TrainingCenter, error) {
	c, ok := r.centers[id]
	if !ok {
		return nil, apperrors.ErrTrainingCenterNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCenterRepo) ListTrainingCenters(_ context.Context, _ models.TrainingCenterFilter) ([]*models.TrainingCenter, error) {
	out := make([]*models.TrainingCenter, 0, len(r.centers))
	for _, c := range r.centers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCenterRepo) UpdateTrainingCenter(_ context.Context, center *models.TrainingCenter) error {
	if _, ok := r.centers[center.ID]; !ok {
		return apperrors.ErrTrainingCenterNotFound
	}
	r.updates++
	c := *center
	r.centers[c.ID] = &c
	return nil
}

func (r *fakeCenterRepo) DeleteTrainingCenter(_ context.Context, id int64) error {
	if _, ok := r.centers[id]; !ok {
		return apperrors.ErrTrainingCenterNotFound
	}
	delete(r.centers, id)
	return nil
}

func (r *fakeCenterRepo) TrainingCenterExists(_ context.Context, id int64) (bool, error) {
	_, ok := r.centers[id]
	return ok, nil
}

type fakeStudentRepo struct {
	nextID   int64
	students map[int64]*models.Student
	centers  *fakeCenterRepo
}

func newFakeStudentRepo(centers *fakeCenterRepo) *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]*models.Student{}, centers: centers}
}

func (r *fakeStudentRepo) withCenterName(s *models.Student) *models.Student {
	cp := *s
	cp.TrainingCenterName = nil
	if cp.TrainingCenterID != nil {
		if c, ok := r.centers.centers[*cp.TrainingCenterID]; ok {
			name := c.Name
			cp.TrainingCenterName = &name
		}
	}
	return &cp
}

func (r *fakeStudentRepo) CreateStudent(_ context.Context, student *models.Student) error {
	r.nextID++
	student.ID = r.nextID
	s := *student
	r.students[s.ID] = &s
	return nil
}

func (r *fakeStudentRepo) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return r.withCenterName(s), nil
}

func (r *fakeStudentRepo) ListStudents(_ context.Context, _ models.StudentFilter) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, r.withCenterName(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStudentRepo) UpdateStudent(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	s := *student
	r.students[s.ID] = &s
	return nil
}

func (r *fakeStudentRepo) DeleteStudent(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) StudentExists(_ context.Context, id int64) (bool, error) {
	_, ok := r.students[id]
	return ok, nil
}

type fakeQuotaRepo struct {
	nextID   int64
	requests map[int64]*models.QuotaRequest
	centers  *fakeCenterRepo
	today    time.Time
}

func newFakeQuotaRepo(centers *fakeCenterRepo) *fakeQuotaRepo {
	return &fakeQuotaRepo{
		requests: map[int64]*models.QuotaRequest{},
		centers:  centers,
		today:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeQuotaRepo) CreateQuotaRequest(_ context.Context, req *models.QuotaRequest) error {
	r.nextID++
	req.ID = r.nextID
	req.RequestDate = r.today
	q := *req
	r.requests[q.ID] = &q
	return nil
}

func (r *fakeQuotaRepo) GetQuotaRequestByID(_ context.Context, id int64) (*models.QuotaRequest, error) {
	q, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrQuotaRequestNotFound
	}
	cp := *q
	if c, ok := r.centers.centers[cp.TrainingCenterID]; ok {
		cp.TrainingCenterName = c.Name
	}
	return &cp, nil
}

func (r *fakeQuotaRepo) ListQuotaRequests(ctx context.Context, _ models.QuotaRequestFilter) ([]*models.QuotaRequest, error) {
	out := make([]*models.QuotaRequest, 0, len(r.requests))
	for id := range r.requests {
		q, _ := r.GetQuotaRequestByID(ctx, id)
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeQuotaRepo) UpdateQuotaRequest(_ context.Context, req *models.QuotaRequest) error {
	old, ok := r.requests[req.ID]
	if !ok {
		return apperrors.ErrQuotaRequestNotFound
	}
	q := *req
	q.RequestDate = old.RequestDate
	r.requests[q.ID] = &q
	return nil
}

func (r *fakeQuotaRepo) DeleteQuotaRequest(_ context.Context, id int64) error {
	if _, ok := r.requests[id]; !ok {
		return apperrors.ErrQuotaRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

type fakeBlockRepo struct {
	nextID int64
	blocks map[int64]*models.ScheduleBlock
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: map[int64]*models.ScheduleBlock{}}
}

func (r *fakeBlockRepo) CreateScheduleBlock(_ context.Context, block *models.ScheduleBlock) error {
	r.nextID++
	block.ID = r.nextID
	b := *block
	r.blocks[b.ID] = &b
	return nil
}

func (r *fakeBlockRepo) GetScheduleBlockByID(_ context.Context, id int64) (*models.ScheduleBlock, error) {
	b, ok := r.blocks[id]
	if !ok {
		return nil, apperrors.ErrScheduleBlockNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBlockRepo) ListScheduleBlocks(_ context.Context, _ models.ScheduleBlockFilter) ([]*models.ScheduleBlock, error) {
	out := make([]*models.ScheduleBlock, 0, len(r.blocks))
	for _, b := range r.blocks {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBlockRepo) UpdateScheduleBlock(_ context.Context, block *models.ScheduleBlock) error {
	if _, ok := r.blocks[block.ID]; !ok {
		return apperrors.ErrScheduleBlockNotFound
	}
	b := *block
	r.blocks[b.ID] = &b
	return nil
}

func (r *fakeBlockRepo) DeleteScheduleBlock(_ context.Context, id int64) error {
	if _, ok := r.blocks[id]; !ok {
		return apperrors.ErrScheduleBlockNotFound
	}
	delete(r.blocks, id)
	return nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
	logins int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) UpsertUser(_ context.Context, username, passwordHash string) (int64, error) {
	for _, u := range r.users {
		if u.Username == username {
			u.PasswordHash = passwordHash
			u.IsActive = true
			return u.ID, nil
		}
	}
	r.nextID++
	r.users[r.nextID] = &models.User{ID: r.nextID, Username: username, PasswordHash: passwordHash, IsActive: true}
	return r.nextID, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ int64) error {
	r.logins++
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
	now    func() time.Time
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.RefreshToken{}, now: time.Now}
}

func (r *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	if _, ok := r.tokens[token]; ok {
		return apperrors.ErrTokenInvalid
	}
	r.tokens[token] = &models.RefreshToken{Token: token, UserID: userID, ExpiryDate: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetToken(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := r.tokens[token]
	switch {
	case !ok:
		return nil, apperrors.ErrTokenNotFound
	case rt.IsRevoked:
		return nil, apperrors.ErrTokenRevoked
	case rt.ExpiryDate.Before(r.now()):
		return nil, apperrors.ErrTokenExpired
	}
	cp := *rt
	return &cp, nil
}

func (r *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	rt, ok := r.tokens[token]
	if !ok || rt.IsRevoked {
		return apperrors.ErrTokenNotFound
	}
	rt.IsRevoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, rt := range r.tokens {
		if rt.UserID == userID {
			rt.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanupExpiredTokens(_ context.Context) (int64, error) {
	var n int64
	for k, rt := range r.tokens {
		if rt.ExpiryDate.Before(r.now()) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  5 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hospital-test",
	})
}

func ptr[T any](v T) *T { return &v }
