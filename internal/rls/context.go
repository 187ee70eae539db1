package rls

// PolicyLookup resolves the filter configuration for a (role, resource)
// pair. It must be total: unknown pairs resolve to DenyAll, never to an
// absent value. Supplied by the policy table collaborator.
type PolicyLookup func(role, resource string) FilterConfig

// IdentifierSource provides the caller's profile-scoped identifiers.
// Implemented by the authenticated principal record.
type IdentifierSource interface {
	// ProfileIdentifiers returns profile-scoped ids keyed by identifier
	// key. Values may be nil when the caller lacks that profile.
	ProfileIdentifiers() map[string]*int64
}

// Context is the immutable, request-scoped RLS context: the resolved filter
// config for the caller's role on one resource, plus the identifiers a
// FieldEquals config may reference. Constructed once per request, threaded
// explicitly through interpretation, composition, and the enforcement
// auditor, and discarded at request end.
type Context struct {
	Resource     string
	Role         string
	FilterConfig FilterConfig
	Identifiers  Identifiers
}

// Engine ties the policy lookup and the security-event observer together.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	lookup PolicyLookup
	obs    Observer
}

func NewEngine(lookup PolicyLookup, obs Observer) *Engine {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Engine{lookup: lookup, obs: obs}
}

// BuildContext assembles the request-scoped context for one resource.
//
// A missing resource is a *ConfigError: the route never attached resource
// metadata, which is a wiring bug, not a hostile caller. A missing role is
// an *AuthzError: the caller is authenticated but cannot be authorized.
// The identifiers map always carries userId plus every profile key, with
// nil values for profiles the caller does not have.
func (e *Engine) BuildContext(role string, userID int64, resource string, src IdentifierSource) (*Context, error) {
	if resource == "" {
		return nil, &ConfigError{Detail: "no resource metadata attached to the route"}
	}
	if role == "" {
		e.obs.AccessDenied(resource, "", "caller has no assigned role")
		return nil, &AuthzError{Resource: resource, Detail: "user has no assigned role"}
	}

	cfg := e.lookup(role, resource)

	uid := userID
	ids := Identifiers{KeyUserID: &uid}
	for _, k := range ProfileKeys {
		ids[k] = nil
	}
	if src != nil {
		for k, v := range src.ProfileIdentifiers() {
			ids[k] = v
		}
	}

	e.obs.ContextBuilt(resource, role, cfg.String())

	return &Context{
		Resource:     resource,
		Role:         role,
		FilterConfig: cfg,
		Identifiers:  ids,
	}, nil
}
