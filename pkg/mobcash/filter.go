package mobcash

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Common filter fields.
const (
	FieldPage     = "page"
	FieldPageSize = "page_size"
	FieldSearch   = "search"

	DefaultPage     = 1
	DefaultPageSize = 10
)

// Filter is a set of query parameters attached to a list read. Values are
// scalars: bool, integers, floats or string. Absent fields are never sent.
type Filter map[string]any

// NewFilter returns an empty filter.
func NewFilter() Filter {
	return Filter{}
}

// DefaultListFilter returns the first page with the default page size.
func DefaultListFilter() Filter {
	return Filter{FieldPage: DefaultPage, FieldPageSize: DefaultPageSize}
}

// Set assigns a field. A nil value, a nil pointer or an empty string
// removes the field instead.
func (f Filter) Set(name string, value any) Filter {
	value = deref(value)
	if value == nil {
		delete(f, name)

		return f
	}

	if s, ok := value.(string); ok && s == "" {
		delete(f, name)

		return f
	}

	f[name] = value

	return f
}

// Page sets the page number.
func (f Filter) Page(page int) Filter {
	return f.Set(FieldPage, page)
}

// PageSize sets the page size.
func (f Filter) PageSize(size int) Filter {
	return f.Set(FieldPageSize, size)
}

// Search sets the free-text search term.
func (f Filter) Search(term string) Filter {
	return f.Set(FieldSearch, term)
}

// Clone returns an independent copy of the filter.
func (f Filter) Clone() Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}

	return out
}

// Int returns an integer field, or def when it is absent or not integral.
func (f Filter) Int(name string, def int) int {
	switch v := f[name].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}

// Values encodes the filter as URL query parameters.
func (f Filter) Values() url.Values {
	values := url.Values{}

	for name, value := range f {
		text, ok := formatScalar(value)
		if !ok {
			continue
		}

		values.Set(name, text)
	}

	return values
}

// CacheKey returns a stable identifier for a resource read with a filter.
// Field order does not change the key, and fields that Values drops do not
// take part in it: two filters sending the same query share one key.
func CacheKey(resource string, filter Filter) string {
	values := filter.Values()
	if len(values) == 0 {
		return resource
	}

	return resource + "?" + values.Encode()
}

// ResourceOf returns the resource part of a cache key.
func ResourceOf(key string) string {
	if i := strings.IndexByte(key, '?'); i >= 0 {
		return key[:i]
	}

	return key
}

func formatScalar(value any) (string, bool) {
	switch v := deref(value).(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}

		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

func deref(value any) any {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return nil
		}

		return *v
	case *bool:
		if v == nil {
			return nil
		}

		return *v
	case *int:
		if v == nil {
			return nil
		}

		return *v
	case *int64:
		if v == nil {
			return nil
		}

		return *v
	case *float64:
		if v == nil {
			return nil
		}

		return *v
	default:
		return value
	}
}

// NetworkFilters narrows the networks list.
type NetworkFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	Enable   *bool
}

// Filter converts the typed filters to a Filter.
func (nf NetworkFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, nf.Page).
		Set(FieldPageSize, nf.PageSize).
		Set(FieldSearch, nf.Search).
		Set("enable", nf.Enable)
}

// PlatformFilters narrows the platforms list.
type PlatformFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	Enable   *bool
}

// Filter converts the typed filters to a Filter.
func (pf PlatformFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, pf.Page).
		Set(FieldPageSize, pf.PageSize).
		Set(FieldSearch, pf.Search).
		Set("enable", pf.Enable)
}

// BonusFilters narrows the bonuses list.
type BonusFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	User     *string
}

// Filter converts the typed filters to a Filter.
func (bf BonusFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, bf.Page).
		Set(FieldPageSize, bf.PageSize).
		Set(FieldSearch, bf.Search).
		Set("user", bf.User)
}

// TelephoneFilters narrows the telephones list.
type TelephoneFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	Network  *int
}

// Filter converts the typed filters to a Filter.
func (tf TelephoneFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, tf.Page).
		Set(FieldPageSize, tf.PageSize).
		Set(FieldSearch, tf.Search).
		Set("network", tf.Network)
}

// UserAppIDFilters narrows the user app ids list.
type UserAppIDFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	AppName  *string
}

// Filter converts the typed filters to a Filter.
func (uf UserAppIDFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, uf.Page).
		Set(FieldPageSize, uf.PageSize).
		Set(FieldSearch, uf.Search).
		Set("app_name", uf.AppName)
}

// NotificationFilters narrows the notifications list.
type NotificationFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	IsRead   *bool
}

// Filter converts the typed filters to a Filter.
func (nf NotificationFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, nf.Page).
		Set(FieldPageSize, nf.PageSize).
		Set(FieldSearch, nf.Search).
		Set("is_read", nf.IsRead)
}

// DepositFilters narrows the deposits list.
type DepositFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	BetApp   *string
}

// Filter converts the typed filters to a Filter.
func (df DepositFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, df.Page).
		Set(FieldPageSize, df.PageSize).
		Set(FieldSearch, df.Search).
		Set("bet_app", df.BetApp)
}

// AdvertisementFilters narrows the advertisements list.
type AdvertisementFilters struct {
	Page     *int
	PageSize *int
	Enable   *bool
}

// Filter converts the typed filters to a Filter.
func (af AdvertisementFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, af.Page).
		Set(FieldPageSize, af.PageSize).
		Set("enable", af.Enable)
}

// TransactionFilters narrows the transactions lists.
type TransactionFilters struct {
	Page      *int
	PageSize  *int
	Search    *string
	Status    *string
	TypeTrans *string
	Source    *string
	Network   *int
	App       *string
}

// Filter converts the typed filters to a Filter.
func (tf TransactionFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, tf.Page).
		Set(FieldPageSize, tf.PageSize).
		Set(FieldSearch, tf.Search).
		Set("status", tf.Status).
		Set("type_trans", tf.TypeTrans).
		Set("source", tf.Source).
		Set("network", tf.Network).
		Set("app", tf.App)
}

// RechargeFilters narrows the recharges list.
type RechargeFilters struct {
	Page          *int
	PageSize      *int
	Status        *string
	PaymentMethod *string
}

// Filter converts the typed filters to a Filter.
func (rf RechargeFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, rf.Page).
		Set(FieldPageSize, rf.PageSize).
		Set("status", rf.Status).
		Set("payment_method", rf.PaymentMethod)
}

// UserFilters narrows the users and bot users lists.
type UserFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	IsBlock  *bool
}

// Filter converts the typed filters to a Filter.
func (uf UserFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, uf.Page).
		Set(FieldPageSize, uf.PageSize).
		Set(FieldSearch, uf.Search).
		Set("is_block", uf.IsBlock)
}

// CouponFilters narrows the coupons list.
type CouponFilters struct {
	Page     *int
	PageSize *int
	Search   *string
	BetApp   *string
}

// Filter converts the typed filters to a Filter.
func (cf CouponFilters) Filter() Filter {
	return NewFilter().
		Set(FieldPage, cf.Page).
		Set(FieldPageSize, cf.PageSize).
		Set(FieldSearch, cf.Search).
		Set("bet_app", cf.BetApp)
}
