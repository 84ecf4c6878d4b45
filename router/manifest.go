package router

// RouteInfo is a serializable description of a route.
type RouteInfo struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Template string      `json:"template" yaml:"template"`
	View     string      `json:"view,omitempty" yaml:"view,omitempty"`
	Redirect string      `json:"redirect,omitempty" yaml:"redirect,omitempty"`
	Params   []ParamInfo `json:"params,omitempty" yaml:"params,omitempty"`
}

// ParamInfo describes a single template parameter.
type ParamInfo struct {
	Name       string `json:"name" yaml:"name"`
	Optional   bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// MatchInfo is a serializable description of a resolved match.
type MatchInfo struct {
	Path           string            `json:"path" yaml:"path"`
	FullPath       string            `json:"full_path" yaml:"full_path"`
	View           string            `json:"view" yaml:"view"`
	Route          string            `json:"route" yaml:"route"`
	Name           string            `json:"name,omitempty" yaml:"name,omitempty"`
	Params         map[string]string `json:"params" yaml:"params"`
	RedirectedFrom []string          `json:"redirected_from,omitempty" yaml:"redirected_from,omitempty"`
}

// Info describes the route.
func (r *Route) Info() RouteInfo {
	info := RouteInfo{
		Name: r.name,
		View: r.view,
	}
	if r.pattern == nil {
		return info
	}
	info.Template = r.pattern.template
	if r.redirect != nil {
		info.Redirect = r.redirect.template
	}
	for _, seg := range r.pattern.segments {
		if !seg.isParam() {
			continue
		}
		info.Params = append(info.Params, ParamInfo{
			Name:       seg.name,
			Optional:   seg.optional,
			Constraint: seg.constraint,
		})
	}
	return info
}

// Manifest describes every route in table order.
func (t *Table) Manifest() []RouteInfo {
	infos := make([]RouteInfo, 0, len(t.routes))
	for _, r := range t.routes {
		infos = append(infos, r.Info())
	}
	return infos
}

// Info describes the match. Params is never nil.
func (m *Match) Info() MatchInfo {
	info := MatchInfo{
		Path:           m.Path,
		FullPath:       m.FullPath(),
		View:           m.View,
		Params:         m.Params.Clone(),
		RedirectedFrom: m.RedirectedFrom,
	}
	if m.Route != nil {
		info.Name = m.Route.name
		if m.Route.pattern != nil {
			info.Route = m.Route.pattern.template
		}
	}
	return info
}
