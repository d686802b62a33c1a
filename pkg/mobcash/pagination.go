package mobcash

// PageInfo describes where a list page sits in the full result set.
type PageInfo struct {
	Page         int  `json:"page"          yaml:"page"`
	PageSize     int  `json:"page_size"     yaml:"page_size"`
	TotalPages   int  `json:"total_pages"   yaml:"total_pages"`
	TotalCount   int  `json:"total_count"   yaml:"total_count"`
	HasNext      bool `json:"has_next"      yaml:"has_next"`
	HasPrevious  bool `json:"has_previous"  yaml:"has_previous"`
	ShowControls bool `json:"show_controls" yaml:"show_controls"`
}

// NewPageInfo derives pagination state from an envelope and the filter used
// to read it. Missing page fields fall back to the list defaults.
func NewPageInfo[T any](env *Envelope[T], filter Filter) PageInfo {
	info := PageInfo{
		Page:     filter.Int(FieldPage, DefaultPage),
		PageSize: filter.Int(FieldPageSize, DefaultPageSize),
	}

	if info.Page < 1 {
		info.Page = DefaultPage
	}

	if info.PageSize < 1 {
		info.PageSize = DefaultPageSize
	}

	if env == nil {
		return info
	}

	info.TotalCount = env.Count
	info.TotalPages = (env.Count + info.PageSize - 1) / info.PageSize
	info.HasNext = env.Next != nil
	info.HasPrevious = env.Previous != nil
	info.ShowControls = info.HasNext || info.HasPrevious

	return info
}

// NextFilter returns a copy of filter pointing at the following page.
func NextFilter(filter Filter) Filter {
	page := filter.Int(FieldPage, DefaultPage)

	return filter.Clone().Page(page + 1)
}

// PreviousFilter returns a copy of filter pointing at the preceding page,
// never below the first.
func PreviousFilter(filter Filter) Filter {
	page := filter.Int(FieldPage, DefaultPage) - 1
	if page < DefaultPage {
		page = DefaultPage
	}

	return filter.Clone().Page(page)
}
