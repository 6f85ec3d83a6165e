package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
)

// --- Mock implementations ---

type mockServiceRepo struct {
	listFn    func(ctx context.Context) ([]domain.Service, error)
	getFn     func(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	createFn  func(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error)
	updateFn  func(ctx context.Context, id uuid.UUID, fields domain.ServiceFields) (*domain.Service, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	reorderFn func(ctx context.Context, orderedIDs []uuid.UUID) error
}

func (m *mockServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrServiceNotFound
}

func (m *mockServiceRepo) Create(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error) {
	if m.createFn != nil {
		return m.createFn(ctx, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockServiceRepo) Update(ctx context.Context, id uuid.UUID, fields domain.ServiceFields) (*domain.Service, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockServiceRepo) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	if m.reorderFn != nil {
		return m.reorderFn(ctx, orderedIDs)
	}
	return fmt.Errorf("not implemented")
}

type mockCatalog struct {
	listFn      func(ctx context.Context) ([]domain.Service, error)
	invalidated int
}

func (m *mockCatalog) List(ctx context.Context) ([]domain.Service, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []domain.Service{}, nil
}

func (m *mockCatalog) Invalidate(_ context.Context) { m.invalidated++ }

type mockAdminRepo struct {
	getFn    func(ctx context.Context, username string) (*domain.Admin, error)
	upsertFn func(ctx context.Context, username, passwordHash string) (*domain.Admin, error)
}

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	if m.getFn != nil {
		return m.getFn(ctx, username)
	}
	return nil, domain.ErrAdminNotFound
}

func (m *mockAdminRepo) Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, username, passwordHash)
	}
	return &domain.Admin{Username: username, PasswordHash: passwordHash}, nil
}

type mockEnquiryRepo struct {
	bookingFn func(ctx context.Context, req domain.BookingRequest) (*domain.BookingRequest, error)
	generalFn func(ctx context.Context, enq domain.GeneralEnquiry) (*domain.GeneralEnquiry, error)
}

func (m *mockEnquiryRepo) CreateBookingRequest(ctx context.Context, req domain.BookingRequest) (*domain.BookingRequest, error) {
	if m.bookingFn != nil {
		return m.bookingFn(ctx, req)
	}
	req.ID = uuid.New()
	return &req, nil
}

func (m *mockEnquiryRepo) CreateGeneralEnquiry(ctx context.Context, enq domain.GeneralEnquiry) (*domain.GeneralEnquiry, error) {
	if m.generalFn != nil {
		return m.generalFn(ctx, enq)
	}
	enq.ID = uuid.New()
	return &enq, nil
}

type mockTokenIssuer struct {
	issueFn func(username string) (string, error)
}

func (m *mockTokenIssuer) Issue(username string) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(username)
	}
	return "token-for-" + username, nil
}

func acceptPassword(hash, password string) error {
	if hash == "hash:"+password {
		return nil
	}
	return fmt.Errorf("invalid password")
}

func newTestService(repo *mockServiceRepo, catalog *mockCatalog, admins *mockAdminRepo) *Service {
	return NewService(repo, catalog, admins, &mockEnquiryRepo{}, &mockTokenIssuer{}, acceptPassword, nil)
}

// --- Catalog tests ---

func TestCreateService_RejectsMissingFields(t *testing.T) {
	catalog := &mockCatalog{}
	svc := newTestService(&mockServiceRepo{}, catalog, &mockAdminRepo{})

	_, err := svc.CreateService(context.Background(), domain.ServiceFields{
		Name:        "  ",
		PriceString: "$30",
		Description: "desc",
	})
	assert.ErrorIs(t, err, domain.ErrMissingServiceFields)
	assert.Zero(t, catalog.invalidated, "validation failure must not touch the cache")
}

func TestCreateService_InvalidatesCache(t *testing.T) {
	created := &domain.Service{ID: uuid.New(), Name: "Dog Walking"}
	repo := &mockServiceRepo{
		createFn: func(_ context.Context, fields domain.ServiceFields) (*domain.Service, error) {
			assert.Equal(t, "Dog Walking", fields.Name)
			return created, nil
		},
	}
	catalog := &mockCatalog{}
	svc := newTestService(repo, catalog, &mockAdminRepo{})

	got, err := svc.CreateService(context.Background(), domain.ServiceFields{
		Name:        "Dog Walking",
		PriceString: "$30/hour",
		Description: "walkies",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 1, catalog.invalidated)
}

func TestUpdateService_PropagatesNotFound(t *testing.T) {
	repo := &mockServiceRepo{
		updateFn: func(context.Context, uuid.UUID, domain.ServiceFields) (*domain.Service, error) {
			return nil, domain.ErrServiceNotFound
		},
	}
	catalog := &mockCatalog{}
	svc := newTestService(repo, catalog, &mockAdminRepo{})

	_, err := svc.UpdateService(context.Background(), uuid.New(), domain.ServiceFields{
		Name: "X", PriceString: "$1", Description: "d",
	})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	assert.Zero(t, catalog.invalidated)
}

func TestDeleteService_UnknownIDSkipsDelete(t *testing.T) {
	deleted := false
	repo := &mockServiceRepo{
		deleteFn: func(context.Context, uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	catalog := &mockCatalog{}
	svc := newTestService(repo, catalog, &mockAdminRepo{})

	err := svc.DeleteService(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	assert.False(t, deleted, "nothing to delete once the lookup misses")
	assert.Zero(t, catalog.invalidated)
}

func TestDeleteService_LooksUpThenDeletes(t *testing.T) {
	id := uuid.New()
	var lookedUp, deletedID uuid.UUID
	repo := &mockServiceRepo{
		getFn: func(_ context.Context, got uuid.UUID) (*domain.Service, error) {
			lookedUp = got
			return &domain.Service{ID: got, Name: "Dog Walking"}, nil
		},
		deleteFn: func(_ context.Context, got uuid.UUID) error {
			deletedID = got
			return nil
		},
	}
	catalog := &mockCatalog{}
	svc := newTestService(repo, catalog, &mockAdminRepo{})

	require.NoError(t, svc.DeleteService(context.Background(), id))

	assert.Equal(t, id, lookedUp)
	assert.Equal(t, id, deletedID)
	assert.Equal(t, 1, catalog.invalidated)
}

func TestReorderServices_InvalidatesOnlyOnSuccess(t *testing.T) {
	var submitted []uuid.UUID
	repo := &mockServiceRepo{
		reorderFn: func(_ context.Context, ids []uuid.UUID) error {
			submitted = ids
			return nil
		},
	}
	catalog := &mockCatalog{}
	svc := newTestService(repo, catalog, &mockAdminRepo{})

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	require.NoError(t, svc.ReorderServices(context.Background(), ids))
	assert.Equal(t, ids, submitted)
	assert.Equal(t, 1, catalog.invalidated)

	repo.reorderFn = func(context.Context, []uuid.UUID) error { return domain.ErrInvalidOrder }
	err := svc.ReorderServices(context.Background(), ids)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Equal(t, 1, catalog.invalidated)
}

// --- Login tests ---

func TestLogin_Success(t *testing.T) {
	admins := &mockAdminRepo{
		getFn: func(_ context.Context, username string) (*domain.Admin, error) {
			return &domain.Admin{Username: username, PasswordHash: "hash:woof"}, nil
		},
	}
	svc := newTestService(&mockServiceRepo{}, &mockCatalog{}, admins)

	result, err := svc.Login(context.Background(), "debbie", "woof")
	require.NoError(t, err)
	assert.Equal(t, "debbie", result.Username)
	assert.Equal(t, "token-for-debbie", result.Token)
}

func TestLogin_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	admins := &mockAdminRepo{
		getFn: func(_ context.Context, username string) (*domain.Admin, error) {
			if username == "debbie" {
				return &domain.Admin{Username: username, PasswordHash: "hash:woof"}, nil
			}
			return nil, domain.ErrAdminNotFound
		},
	}
	svc := newTestService(&mockServiceRepo{}, &mockCatalog{}, admins)

	_, errUnknown := svc.Login(context.Background(), "nobody", "woof")
	_, errWrong := svc.Login(context.Background(), "debbie", "meow")

	assert.ErrorIs(t, errUnknown, ErrBadCredentials)
	assert.ErrorIs(t, errWrong, ErrBadCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newTestService(&mockServiceRepo{}, &mockCatalog{}, &mockAdminRepo{})

	_, err := svc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(context.Background(), "debbie", "")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

// --- Enquiry tests ---

type recordingNotifier struct {
	bookings  int
	enquiries int
}

func (n *recordingNotifier) BookingReceived(context.Context, *domain.BookingRequest) { n.bookings++ }
func (n *recordingNotifier) EnquiryReceived(context.Context, *domain.GeneralEnquiry) { n.enquiries++ }

func TestSubmitBookingRequest_Notifies(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(&mockServiceRepo{}, &mockCatalog{}, &mockAdminRepo{}, &mockEnquiryRepo{}, &mockTokenIssuer{}, acceptPassword, notifier)

	saved, err := svc.SubmitBookingRequest(context.Background(), domain.BookingRequest{
		ServiceName:  "Dog Walking",
		CustomerName: "Jamie",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, 1, notifier.bookings)
}

func TestSubmitGeneralEnquiry_PersistErrorSkipsNotification(t *testing.T) {
	notifier := &recordingNotifier{}
	enquiries := &mockEnquiryRepo{
		generalFn: func(context.Context, domain.GeneralEnquiry) (*domain.GeneralEnquiry, error) {
			return nil, fmt.Errorf("db down")
		},
	}
	svc := NewService(&mockServiceRepo{}, &mockCatalog{}, &mockAdminRepo{}, enquiries, &mockTokenIssuer{}, acceptPassword, notifier)

	_, err := svc.SubmitGeneralEnquiry(context.Background(), domain.GeneralEnquiry{Name: "Sam"})
	assert.Error(t, err)
	assert.Zero(t, notifier.enquiries)
}
