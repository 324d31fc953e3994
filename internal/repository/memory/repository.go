package memory

import (
	"context"
	"errors"
	"sync"

	"mepquote/internal/model"
)

type InMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.GoogleID == googleID {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return errors.New("user not found")
	}
	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[id]; !exists {
		return errors.New("user not found")
	}
	delete(r.users, id)
	return nil
}

type InMemoryEmailRepository struct {
	emails map[string]*model.NormalizedEmail // userID + "/" + messageID
	order  []string
	mutex  sync.RWMutex
}

func NewInMemoryEmailRepository() *InMemoryEmailRepository {
	return &InMemoryEmailRepository{
		emails: make(map[string]*model.NormalizedEmail),
	}
}

func emailKey(userID, messageID string) string {
	return userID + "/" + messageID
}

func (r *InMemoryEmailRepository) Create(ctx context.Context, userID string, email *model.NormalizedEmail) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := emailKey(userID, email.ID)
	if _, exists := r.emails[key]; exists {
		return errors.New("email already exists")
	}
	r.emails[key] = email
	r.order = append(r.order, key)
	return nil
}

func (r *InMemoryEmailRepository) FindByUserID(ctx context.Context, userID string) ([]*model.NormalizedEmail, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	prefix := userID + "/"
	var emails []*model.NormalizedEmail
	for _, key := range r.order {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			emails = append(emails, r.emails[key])
		}
	}
	return emails, nil
}

func (r *InMemoryEmailRepository) FindByMessageID(ctx context.Context, userID, messageID string) (*model.NormalizedEmail, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	email, exists := r.emails[emailKey(userID, messageID)]
	if !exists {
		return nil, errors.New("email not found")
	}
	return email, nil
}

func (r *InMemoryEmailRepository) Delete(ctx context.Context, userID, messageID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := emailKey(userID, messageID)
	if _, exists := r.emails[key]; !exists {
		return errors.New("email not found")
	}
	delete(r.emails, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type InMemoryQuotationRepository struct {
	quotations map[string]*model.Quotation
	mutex      sync.RWMutex
}

func NewInMemoryQuotationRepository() *InMemoryQuotationRepository {
	return &InMemoryQuotationRepository{
		quotations: make(map[string]*model.Quotation),
	}
}

func (r *InMemoryQuotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.quotations[quotation.ID] = quotation
	return nil
}

func (r *InMemoryQuotationRepository) FindByID(ctx context.Context, id string) (*model.Quotation, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	quotation, exists := r.quotations[id]
	if !exists {
		return nil, errors.New("quotation not found")
	}
	return quotation, nil
}

func (r *InMemoryQuotationRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Quotation, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var quotations []*model.Quotation
	for _, quotation := range r.quotations {
		if quotation.UserID == userID {
			quotations = append(quotations, quotation)
		}
	}
	return quotations, nil
}

func (r *InMemoryQuotationRepository) Update(ctx context.Context, quotation *model.Quotation) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.quotations[quotation.ID]; !exists {
		return errors.New("quotation not found")
	}
	r.quotations[quotation.ID] = quotation
	return nil
}

func (r *InMemoryQuotationRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.quotations[id]; !exists {
		return errors.New("quotation not found")
	}
	delete(r.quotations, id)
	return nil
}
