package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

type supabaseCoupleRepository struct {
	client *SupabaseClient
}

// NewSupabaseCoupleRepository creates a couple repository over Supabase REST
func NewSupabaseCoupleRepository(client *SupabaseClient) domainRepo.CoupleRepository {
	return &supabaseCoupleRepository{client: client}
}

func (r *supabaseCoupleRepository) GetByID(ctx context.Context, coupleID string) (*model.Couple, error) {
	return r.first(ctx, "get couple", url.Values{
		"select": {"id,user1_id,user2_id"},
		"id":     {eq(coupleID)},
		"limit":  {"1"},
	})
}

func (r *supabaseCoupleRepository) GetByMember(ctx context.Context, userID string) (*model.Couple, error) {
	return r.first(ctx, "get couple by member", url.Values{
		"select": {"id,user1_id,user2_id"},
		"or":     {fmt.Sprintf("(user1_id.eq.%s,user2_id.eq.%s)", userID, userID)},
		"order":  {"id.asc"},
		"limit":  {"1"},
	})
}

func (r *supabaseCoupleRepository) first(ctx context.Context, op string, query url.Values) (*model.Couple, error) {
	var couples []model.Couple
	err := r.client.do(ctx, restRequest{
		op:     op,
		method: http.MethodGet,
		table:  "couples",
		query:  query,
	}, &couples)
	if err != nil {
		return nil, err
	}
	if len(couples) == 0 {
		return nil, nil
	}
	return &couples[0], nil
}
