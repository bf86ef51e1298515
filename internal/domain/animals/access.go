package animals

import (
	"strings"

	"my-zoo/internal/platform/cache"
	"my-zoo/internal/ports/auth"
)

const (
	PermissionViewAnyUnpublished = "view any unpublished content"
	PermissionViewOwnUnpublished = "view own unpublished content"
)

// AccessResult es el resultado de un chequeo de permiso, con los contextos
// de cache de los que depende.
type AccessResult struct {
	Allowed bool
	meta    cache.Metadata
}

func (a AccessResult) CacheMetadata() cache.Metadata {
	return a.meta
}

// CheckViewAccess decide si claims puede ver rec:
// - publicado: cualquiera
// - no publicado: permiso "view any unpublished content", o dueño con "view own unpublished content"
func CheckViewAccess(rec Record, claims auth.Claims) AccessResult {
	meta := cache.New(cache.Permanent).WithTags(NodeTag(rec.ID)).WithContexts(ContextPermissions)

	if rec.Published {
		return AccessResult{Allowed: true, meta: meta}
	}
	if claims.HasPermission(PermissionViewAnyUnpublished) {
		return AccessResult{Allowed: true, meta: meta}
	}

	meta = meta.WithContexts(ContextUser)
	uid := strings.TrimSpace(claims.UserID)
	own := uid != "" && uid == rec.OwnerUserID
	return AccessResult{
		Allowed: own && claims.HasPermission(PermissionViewOwnUnpublished),
		meta:    meta,
	}
}
