package realtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/service"
)

// SnapshotSource resolves a parsed path to its current value. Change
// frames carry the whole document (or collection) at the path, so the
// client mirror can be replaced wholesale on every delivery.
type SnapshotSource interface {
	Snapshot(ctx context.Context, ref docpath.Ref) (interface{}, error)
}

// ServiceSource answers snapshots from the document services.
type ServiceSource struct {
	profiles *service.ProfileService
	logs     *service.LogService
	catalog  *service.CatalogService
}

func NewServiceSource(profiles *service.ProfileService, logs *service.LogService, catalog *service.CatalogService) *ServiceSource {
	return &ServiceSource{profiles: profiles, logs: logs, catalog: catalog}
}

// Snapshot returns the current value of the path. A missing profile is a
// valid state and yields a nil (JSON null) snapshot, not an error.
func (s *ServiceSource) Snapshot(ctx context.Context, ref docpath.Ref) (interface{}, error) {
	switch ref.Kind {
	case docpath.KindProfile:
		userID, err := uuid.Parse(ref.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in path: %w", err)
		}
		profile, err := s.profiles.Get(ctx, userID)
		if errors.Is(err, service.ErrProfileNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return profile, nil

	case docpath.KindLogs:
		userID, err := uuid.Parse(ref.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in path: %w", err)
		}
		return s.logs.List(ctx, userID)

	case docpath.KindAllergens:
		return s.catalog.ListAllergens(ctx)

	case docpath.KindResources:
		return s.catalog.ListResources(ctx)
	}

	return nil, fmt.Errorf("unsupported path kind for %q", ref.Path)
}
