package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"tender-service/internal/entity"
	"tender-service/internal/repo"
	"tender-service/internal/repo/repoerrs"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fakeStore is an in-memory stand-in for the postgres repositories. A single
// mutex plays the role of the per-entity row lock: every write runs under it,
// so concurrent edits are serialized exactly as they are in the real store.
type fakeStore struct {
	mu        sync.Mutex
	tenders   map[string]*tenderRecord
	bids      map[string]*bidRecord
	employees map[string]bool
	orgs      map[string]bool
	seq       int

	lastLimit int
}

type contentRecord struct {
	name        string
	description string
	serviceType string
}

type tenderRecord struct {
	id        uuid.UUID
	status    string
	orgId     uuid.UUID
	creator   string
	active    int
	createdAt time.Time
	order     int
	versions  []contentRecord
}

type bidRecord struct {
	id        uuid.UUID
	status    string
	decision  string
	tenderId  uuid.UUID
	orgId     uuid.UUID
	creator   string
	active    int
	createdAt time.Time
	order     int
	versions  []contentRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tenders:   make(map[string]*tenderRecord),
		bids:      make(map[string]*bidRecord),
		employees: make(map[string]bool),
		orgs:      make(map[string]bool),
	}
}

func (s *fakeStore) addEmployee(username string) {
	s.employees[username] = true
}

func (s *fakeStore) addOrganization() string {
	id := uuid.NewString()
	s.orgs[id] = true

	return id
}

func (s *fakeStore) repositories() *repo.Repositories {
	return &repo.Repositories{
		Tender:   &fakeTenderRepo{store: s},
		Bid:      &fakeBidRepo{store: s},
		Employee: &fakeEmployeeRepo{store: s},
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

type fakeEmployeeRepo struct {
	store *fakeStore
}

func (r *fakeEmployeeRepo) DoesEmployeeExistByUsername(ctx context.Context, username string) (bool, error) {
	return r.store.employees[username], nil
}

func (r *fakeEmployeeRepo) DoesOrganizationExistById(ctx context.Context, id string) (bool, error) {
	return r.store.orgs[id], nil
}

type fakeTenderRepo struct {
	store *fakeStore
}

func (r *fakeTenderRepo) CreateTender(ctx context.Context, input *entity.CreateTenderInput) (uuid.UUID, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	orgId, err := uuid.Parse(input.OrganizationId)
	if err != nil || !s.orgs[input.OrganizationId] {
		return uuid.Nil, fmt.Errorf("%w: tender_organization_id_fkey", repoerrs.ErrConstraint)
	}

	s.seq++
	record := &tenderRecord{
		id:        uuid.New(),
		status:    "Created",
		orgId:     orgId,
		creator:   input.CreatorUsername,
		active:    1,
		createdAt: time.Now().UTC(),
		order:     s.seq,
		versions: []contentRecord{{
			name:        input.Name,
			description: input.Description,
			serviceType: input.ServiceType,
		}},
	}
	s.tenders[record.id.String()] = record

	return record.id, nil
}

func (r *fakeTenderRepo) GetTenderById(ctx context.Context, id string) (*entity.Tender, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tenders[id]
	if !ok {
		return nil, repoerrs.ErrNotFound
	}

	return materializeTender(record), nil
}

func (r *fakeTenderRepo) GetTenders(ctx context.Context, serviceTypes []string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastLimit = pg.Limit

	matches := func(record *tenderRecord) bool {
		if len(serviceTypes) == 0 {
			return true
		}
		current := record.versions[record.active-1].serviceType
		for _, st := range serviceTypes {
			if st == current {
				return true
			}
		}

		return false
	}

	out := make([]entity.Tender, 0)
	for _, record := range s.sortedTenders() {
		if matches(record) {
			out = append(out, *materializeTender(record))
		}
	}

	return paginateTenders(out, pg), nil
}

func (r *fakeTenderRepo) GetTendersByCreator(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastLimit = pg.Limit

	out := make([]entity.Tender, 0)
	for _, record := range s.sortedTenders() {
		if record.creator == username {
			out = append(out, *materializeTender(record))
		}
	}

	return paginateTenders(out, pg), nil
}

func (r *fakeTenderRepo) EditTenderById(ctx context.Context, id string, name, description, serviceType string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tenders[id]
	if !ok {
		return repoerrs.ErrNotFound
	}

	current := record.versions[record.active-1]
	if name == "" {
		name = current.name
	}
	if description == "" {
		description = current.description
	}
	if serviceType == "" {
		serviceType = current.serviceType
	}

	record.versions = append(record.versions, contentRecord{name, description, serviceType})
	record.active = len(record.versions)

	return nil
}

func (r *fakeTenderRepo) RollbackTenderVersion(ctx context.Context, id string, version int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tenders[id]
	if !ok {
		return repoerrs.ErrNotFound
	}
	if version < 1 || version > len(record.versions) {
		return repoerrs.ErrNotFound
	}

	record.active = version

	return nil
}

func (r *fakeTenderRepo) UpdateTenderStatusById(ctx context.Context, id string, newStatus string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tenders[id]
	if !ok {
		return repoerrs.ErrNotFound
	}

	record.status = newStatus

	return nil
}

func (s *fakeStore) sortedTenders() []*tenderRecord {
	out := make([]*tenderRecord, 0, len(s.tenders))
	for _, record := range s.tenders {
		out = append(out, record)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].order > out[j].order; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	return out
}

func materializeTender(record *tenderRecord) *entity.Tender {
	content := record.versions[record.active-1]

	return &entity.Tender{
		Id:              record.id,
		Name:            content.name,
		Description:     content.description,
		ServiceType:     content.serviceType,
		Status:          record.status,
		OrganizationId:  record.orgId,
		CreatorUsername: record.creator,
		Version:         record.active,
		CreatedAt:       record.createdAt.Format(time.RFC3339),
	}
}

func paginateTenders(all []entity.Tender, pg *entity.PaginationInput) []entity.Tender {
	if pg.Offset >= len(all) {
		return []entity.Tender{}
	}
	all = all[pg.Offset:]
	if pg.Limit < len(all) {
		all = all[:pg.Limit]
	}

	return all
}

type fakeBidRepo struct {
	store *fakeStore
}

func (r *fakeBidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tenderId, err := uuid.Parse(input.TenderId)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bid_tender_id_fkey", repoerrs.ErrConstraint)
	}
	orgId, _ := uuid.Parse(input.OrganizationId)

	s.seq++
	record := &bidRecord{
		id:        uuid.New(),
		status:    "Created",
		tenderId:  tenderId,
		orgId:     orgId,
		creator:   input.CreatorUsername,
		active:    1,
		createdAt: time.Now().UTC(),
		order:     s.seq,
		versions: []contentRecord{{
			name:        input.Name,
			description: input.Description,
		}},
	}
	s.bids[record.id.String()] = record

	return record.id, nil
}

func (r *fakeBidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.bids[id]
	if !ok {
		return nil, repoerrs.ErrNotFound
	}

	return materializeBid(record), nil
}

func (r *fakeBidRepo) GetBidsByCreator(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Bid, 0)
	for _, record := range s.bids {
		if record.creator == username {
			out = append(out, *materializeBid(record))
		}
	}

	return out, nil
}

func (r *fakeBidRepo) GetTenderBids(ctx context.Context, tenderId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Bid, 0)
	for _, record := range s.bids {
		if record.tenderId.String() == tenderId {
			out = append(out, *materializeBid(record))
		}
	}

	return out, nil
}

func (r *fakeBidRepo) EditBidById(ctx context.Context, id string, name, description string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.bids[id]
	if !ok {
		return repoerrs.ErrNotFound
	}

	current := record.versions[record.active-1]
	if name == "" {
		name = current.name
	}
	if description == "" {
		description = current.description
	}

	record.versions = append(record.versions, contentRecord{name: name, description: description})
	record.active = len(record.versions)

	return nil
}

func (r *fakeBidRepo) RollbackBidVersion(ctx context.Context, id string, version int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.bids[id]
	if !ok {
		return repoerrs.ErrNotFound
	}
	if version < 1 || version > len(record.versions) {
		return repoerrs.ErrNotFound
	}

	record.active = version

	return nil
}

func (r *fakeBidRepo) UpdateBidStatusById(ctx context.Context, id string, newStatus string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.bids[id]
	if !ok {
		return repoerrs.ErrNotFound
	}

	record.status = newStatus

	return nil
}

func materializeBid(record *bidRecord) *entity.Bid {
	content := record.versions[record.active-1]

	return &entity.Bid{
		Id:              record.id,
		Name:            content.name,
		Description:     content.description,
		Status:          record.status,
		Decision:        record.decision,
		TenderId:        record.tenderId,
		OrganizationId:  record.orgId,
		CreatorUsername: record.creator,
		Version:         record.active,
		CreatedAt:       record.createdAt.Format(time.RFC3339),
	}
}
