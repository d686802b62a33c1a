package form

import (
	"strconv"
	"strings"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// Default API names of a new network.
const defaultNetworkAPI = "connect"

// NetworkDraft is the form state of the network dialog.
type NetworkDraft struct {
	Name              string
	Placeholder       string
	PublicName        string
	CountryCode       string
	Indication        string
	Image             string
	WithdrawalMessage string
	DepositAPI        string
	WithdrawalAPI     string
	PaymentByLink     bool
	OTPRequired       bool
	Enable            bool
	DepositMessage    string
	ActiveForDeposit  bool
	ActiveForWith     bool
}

// NewNetworkDraft returns the defaults of a new network.
func NewNetworkDraft() NetworkDraft {
	return NetworkDraft{
		DepositAPI:       defaultNetworkAPI,
		WithdrawalAPI:    defaultNetworkAPI,
		Enable:           true,
		ActiveForDeposit: true,
		ActiveForWith:    true,
	}
}

// NetworkDraftFrom fills a draft from an existing network.
func NetworkDraftFrom(n mobcash.Network) NetworkDraft {
	return NetworkDraft{
		Name:              n.Name,
		Placeholder:       n.Placeholder,
		PublicName:        n.PublicName,
		CountryCode:       n.CountryCode,
		Indication:        n.Indication,
		Image:             n.Image,
		WithdrawalMessage: deref(n.WithdrawalMessage),
		DepositAPI:        n.DepositAPI,
		WithdrawalAPI:     n.WithdrawalAPI,
		PaymentByLink:     n.PaymentByLink,
		OTPRequired:       n.OTPRequired,
		Enable:            n.Enable,
		DepositMessage:    n.DepositMessage,
		ActiveForDeposit:  n.ActiveForDeposit,
		ActiveForWith:     n.ActiveForWith,
	}
}

// Validate checks the required network fields.
func (d NetworkDraft) Validate() error {
	var c Checker

	c.Required("name", d.Name)
	c.Required("public_name", d.PublicName)
	c.Required("country_code", d.CountryCode)

	return c.Err()
}

// Input converts the draft into a create payload.
func (d NetworkDraft) Input() mobcash.NetworkInput {
	return mobcash.NetworkInput{
		Name:              strings.TrimSpace(d.Name),
		Placeholder:       d.Placeholder,
		PublicName:        strings.TrimSpace(d.PublicName),
		CountryCode:       strings.TrimSpace(d.CountryCode),
		Indication:        d.Indication,
		Image:             d.Image,
		WithdrawalMessage: optional(d.WithdrawalMessage),
		DepositAPI:        d.DepositAPI,
		WithdrawalAPI:     d.WithdrawalAPI,
		PaymentByLink:     d.PaymentByLink,
		OTPRequired:       d.OTPRequired,
		Enable:            d.Enable,
		DepositMessage:    d.DepositMessage,
		ActiveForDeposit:  d.ActiveForDeposit,
		ActiveForWith:     d.ActiveForWith,
	}
}

// Patch returns only the fields that differ from orig.
func (d NetworkDraft) Patch(orig mobcash.Network) mobcash.NetworkPatch {
	in := d.Input()

	return mobcash.NetworkPatch{
		Name:              changed(in.Name, orig.Name),
		Placeholder:       changed(in.Placeholder, orig.Placeholder),
		PublicName:        changed(in.PublicName, orig.PublicName),
		CountryCode:       changed(in.CountryCode, orig.CountryCode),
		Indication:        changed(in.Indication, orig.Indication),
		Image:             changed(in.Image, orig.Image),
		WithdrawalMessage: changed(d.WithdrawalMessage, deref(orig.WithdrawalMessage)),
		DepositAPI:        changed(in.DepositAPI, orig.DepositAPI),
		WithdrawalAPI:     changed(in.WithdrawalAPI, orig.WithdrawalAPI),
		PaymentByLink:     changed(in.PaymentByLink, orig.PaymentByLink),
		OTPRequired:       changed(in.OTPRequired, orig.OTPRequired),
		Enable:            changed(in.Enable, orig.Enable),
		DepositMessage:    changed(in.DepositMessage, orig.DepositMessage),
		ActiveForDeposit:  changed(in.ActiveForDeposit, orig.ActiveForDeposit),
		ActiveForWith:     changed(in.ActiveForWith, orig.ActiveForWith),
	}
}

// PlatformDraft is the form state of the platform dialog. Limits are kept
// as typed text until submit.
type PlatformDraft struct {
	Name               string
	Image              string
	Enable             bool
	DepositTutoLink    string
	WithdrawalTutoLink string
	WhyWithdrawalFail  string
	City               string
	Street             string
	MinimunDeposit     string
	MaxDeposit         string
	MinimunWith        string
	MaxWin             string
}

// NewPlatformDraft returns the defaults of a new platform.
func NewPlatformDraft() PlatformDraft {
	return PlatformDraft{Enable: true}
}

// PlatformDraftFrom fills a draft from an existing platform.
func PlatformDraftFrom(p mobcash.Platform) PlatformDraft {
	return PlatformDraft{
		Name:               p.Name,
		Image:              p.Image,
		Enable:             p.Enable,
		DepositTutoLink:    deref(p.DepositTutoLink),
		WithdrawalTutoLink: deref(p.WithdrawalTutoLink),
		WhyWithdrawalFail:  deref(p.WhyWithdrawalFail),
		City:               deref(p.City),
		Street:             deref(p.Street),
		MinimunDeposit:     formatAmount(p.MinimunDeposit),
		MaxDeposit:         formatAmount(p.MaxDeposit),
		MinimunWith:        formatAmount(p.MinimunWith),
		MaxWin:             formatAmount(p.MaxWin),
	}
}

type platformLimits struct {
	minDeposit, maxDeposit, minWith, maxWin float64
}

func (d PlatformDraft) check() (platformLimits, error) {
	var c Checker

	c.Required("name", d.Name)

	limits := platformLimits{
		minDeposit: c.Number("minimun_deposit", d.MinimunDeposit),
		maxDeposit: c.Number("max_deposit", d.MaxDeposit),
		minWith:    c.Number("minimun_with", d.MinimunWith),
		maxWin:     c.Number("max_win", d.MaxWin),
	}

	return limits, c.Err()
}

// Validate checks the name and that every limit is a number.
func (d PlatformDraft) Validate() error {
	_, err := d.check()

	return err
}

// Input converts the draft into a create payload.
func (d PlatformDraft) Input() (mobcash.PlatformInput, error) {
	limits, err := d.check()
	if err != nil {
		return mobcash.PlatformInput{}, err
	}

	return mobcash.PlatformInput{
		Name:               strings.TrimSpace(d.Name),
		Image:              d.Image,
		Enable:             d.Enable,
		DepositTutoLink:    optional(d.DepositTutoLink),
		WithdrawalTutoLink: optional(d.WithdrawalTutoLink),
		WhyWithdrawalFail:  optional(d.WhyWithdrawalFail),
		City:               optional(d.City),
		Street:             optional(d.Street),
		MinimunDeposit:     limits.minDeposit,
		MaxDeposit:         limits.maxDeposit,
		MinimunWith:        limits.minWith,
		MaxWin:             limits.maxWin,
	}, nil
}

// Patch returns only the fields that differ from orig.
func (d PlatformDraft) Patch(orig mobcash.Platform) (mobcash.PlatformPatch, error) {
	in, err := d.Input()
	if err != nil {
		return mobcash.PlatformPatch{}, err
	}

	return mobcash.PlatformPatch{
		Name:               changed(in.Name, orig.Name),
		Image:              changed(in.Image, orig.Image),
		Enable:             changed(in.Enable, orig.Enable),
		DepositTutoLink:    changed(d.DepositTutoLink, deref(orig.DepositTutoLink)),
		WithdrawalTutoLink: changed(d.WithdrawalTutoLink, deref(orig.WithdrawalTutoLink)),
		WhyWithdrawalFail:  changed(d.WhyWithdrawalFail, deref(orig.WhyWithdrawalFail)),
		City:               changed(d.City, deref(orig.City)),
		Street:             changed(d.Street, deref(orig.Street)),
		MinimunDeposit:     changed(in.MinimunDeposit, orig.MinimunDeposit),
		MaxDeposit:         changed(in.MaxDeposit, orig.MaxDeposit),
		MinimunWith:        changed(in.MinimunWith, orig.MinimunWith),
		MaxWin:             changed(in.MaxWin, orig.MaxWin),
	}, nil
}

// TelephoneDraft is the form state of the telephone dialog.
type TelephoneDraft struct {
	Phone   string
	Network string
}

// TelephoneDraftFrom fills a draft from an existing telephone.
func TelephoneDraftFrom(t mobcash.Telephone) TelephoneDraft {
	return TelephoneDraft{Phone: t.Phone, Network: strconv.Itoa(t.Network)}
}

func (d TelephoneDraft) check() (int, error) {
	var c Checker

	c.Required("phone", d.Phone)
	network := c.ID("network", d.Network)

	return network, c.Err()
}

// Validate checks the phone and the network id.
func (d TelephoneDraft) Validate() error {
	_, err := d.check()

	return err
}

// Input converts the draft into a create payload.
func (d TelephoneDraft) Input() (mobcash.TelephoneInput, error) {
	network, err := d.check()
	if err != nil {
		return mobcash.TelephoneInput{}, err
	}

	return mobcash.TelephoneInput{Phone: strings.TrimSpace(d.Phone), Network: network}, nil
}

// Patch returns only the fields that differ from orig.
func (d TelephoneDraft) Patch(orig mobcash.Telephone) (mobcash.TelephonePatch, error) {
	in, err := d.Input()
	if err != nil {
		return mobcash.TelephonePatch{}, err
	}

	return mobcash.TelephonePatch{
		Phone:   changed(in.Phone, orig.Phone),
		Network: changed(in.Network, orig.Network),
	}, nil
}

// UserAppIDDraft is the form state of the user app id dialog.
type UserAppIDDraft struct {
	UserAppID string
	AppName   string
}

// UserAppIDDraftFrom fills a draft from an existing user app id.
func UserAppIDDraftFrom(u mobcash.UserAppID) UserAppIDDraft {
	return UserAppIDDraft{UserAppID: u.UserAppID, AppName: u.AppName}
}

// Validate checks both fields.
func (d UserAppIDDraft) Validate() error {
	var c Checker

	c.Required("user_app_id", d.UserAppID)
	c.Required("app_name", d.AppName)

	return c.Err()
}

// Input converts the draft into a create payload.
func (d UserAppIDDraft) Input() mobcash.UserAppIDInput {
	return mobcash.UserAppIDInput{
		UserAppID: strings.TrimSpace(d.UserAppID),
		AppName:   strings.TrimSpace(d.AppName),
	}
}

// Patch returns only the fields that differ from orig.
func (d UserAppIDDraft) Patch(orig mobcash.UserAppID) mobcash.UserAppIDPatch {
	in := d.Input()

	return mobcash.UserAppIDPatch{
		UserAppID: changed(in.UserAppID, orig.UserAppID),
		AppName:   changed(in.AppName, orig.AppName),
	}
}

// AdvertisementDraft is the form state of the advertisement dialog. The
// image is filled from the uploaded attachment.
type AdvertisementDraft struct {
	Image  string
	Enable bool
}

// NewAdvertisementDraft returns the defaults of a new advertisement.
func NewAdvertisementDraft() AdvertisementDraft {
	return AdvertisementDraft{Enable: true}
}

// Validate accepts every advertisement draft; the dialog requires the file.
func (d AdvertisementDraft) Validate() error {
	return nil
}

// Input converts the draft into a create payload.
func (d AdvertisementDraft) Input() mobcash.AdvertisementInput {
	return mobcash.AdvertisementInput{Image: d.Image, Enable: d.Enable}
}

// AdvertisementDraftFrom fills a draft from an existing advertisement.
func AdvertisementDraftFrom(a mobcash.Advertisement) AdvertisementDraft {
	return AdvertisementDraft{Image: a.Image, Enable: a.Enable}
}

// Patch returns only the fields that differ from orig.
func (d AdvertisementDraft) Patch(orig mobcash.Advertisement) mobcash.AdvertisementPatch {
	return mobcash.AdvertisementPatch{
		Image:  changed(d.Image, orig.Image),
		Enable: changed(d.Enable, orig.Enable),
	}
}

// CouponDraft is the form state of the coupon dialog.
type CouponDraft struct {
	Code   string
	BetApp string
	Enable bool
}

// NewCouponDraft returns the defaults of a new coupon.
func NewCouponDraft() CouponDraft {
	return CouponDraft{Enable: true}
}

// CouponDraftFrom fills a draft from an existing coupon.
func CouponDraftFrom(c mobcash.Coupon) CouponDraft {
	return CouponDraft{Code: c.Code, BetApp: c.BetApp, Enable: c.Enable}
}

// Validate checks the code and the platform.
func (d CouponDraft) Validate() error {
	var c Checker

	c.Required("code", d.Code)
	c.Required("bet_app", d.BetApp)

	return c.Err()
}

// Input converts the draft into a create payload.
func (d CouponDraft) Input() mobcash.CouponInput {
	return mobcash.CouponInput{
		Code:   strings.TrimSpace(d.Code),
		BetApp: strings.TrimSpace(d.BetApp),
		Enable: d.Enable,
	}
}

// Patch returns only the fields that differ from orig.
func (d CouponDraft) Patch(orig mobcash.Coupon) mobcash.CouponPatch {
	in := d.Input()

	return mobcash.CouponPatch{
		Code:   changed(in.Code, orig.Code),
		BetApp: changed(in.BetApp, orig.BetApp),
		Enable: changed(in.Enable, orig.Enable),
	}
}

// SetAdvertisementImage applies an uploaded URL.
func SetAdvertisementImage(d *AdvertisementDraft, url string) {
	d.Image = url
}

// SetNetworkImage applies an uploaded URL.
func SetNetworkImage(d *NetworkDraft, url string) {
	d.Image = url
}

// DepositDraft is the form state of the platform deposit dialog.
type DepositDraft struct {
	Amount string
	BetApp string
}

func (d DepositDraft) check() (float64, error) {
	var c Checker

	c.Required("bet_app", d.BetApp)
	amount := c.Amount("amount", d.Amount)

	return amount, c.Err()
}

// Validate checks the platform and the amount.
func (d DepositDraft) Validate() error {
	_, err := d.check()

	return err
}

// Input converts the draft into a create payload.
func (d DepositDraft) Input() (mobcash.CreateDepositInput, error) {
	amount, err := d.check()
	if err != nil {
		return mobcash.CreateDepositInput{}, err
	}

	return mobcash.CreateDepositInput{Amount: amount, BetApp: d.BetApp}, nil
}

// TransactionDraft is the form state of the transaction dialog, deposit or
// withdrawal tab.
type TransactionDraft struct {
	Type           string
	Amount         string
	PhoneNumber    string
	App            string
	UserAppID      string
	Network        string
	WithdrawalCode string
	Source         string
}

// NewDepositTransactionDraft returns the defaults of the deposit tab.
func NewDepositTransactionDraft() TransactionDraft {
	return TransactionDraft{Type: mobcash.TransactionTypeDeposit, Source: mobcash.SourceWeb}
}

// NewWithdrawalTransactionDraft returns the defaults of the withdrawal tab.
func NewWithdrawalTransactionDraft() TransactionDraft {
	return TransactionDraft{Type: mobcash.TransactionTypeWithdrawal, Source: mobcash.SourceMobile}
}

type transactionFields struct {
	amount  float64
	network int
}

func (d TransactionDraft) check() (transactionFields, error) {
	var c Checker

	fields := transactionFields{
		amount: c.Amount("amount", d.Amount),
	}

	c.Required("phone_number", d.PhoneNumber)
	c.Required("app", d.App)
	c.Required("user_app_id", d.UserAppID)
	fields.network = c.ID("network", d.Network)

	switch d.Type {
	case mobcash.TransactionTypeDeposit:
	case mobcash.TransactionTypeWithdrawal:
		c.Required("withdriwal_code", d.WithdrawalCode)
	default:
		c.Add("type_trans", constants.ErrInvalidTransType.Error())
	}

	switch d.Source {
	case mobcash.SourceWeb, mobcash.SourceMobile, mobcash.SourceBot:
	default:
		c.Add("source", constants.ErrInvalidSource.Error())
	}

	return fields, c.Err()
}

// Validate checks every required field of the selected tab.
func (d TransactionDraft) Validate() error {
	_, err := d.check()

	return err
}

// DepositInput converts a deposit draft into its payload.
func (d TransactionDraft) DepositInput() (mobcash.DepositTransactionInput, error) {
	fields, err := d.check()
	if err != nil {
		return mobcash.DepositTransactionInput{}, err
	}

	return mobcash.DepositTransactionInput{
		Amount:      fields.amount,
		PhoneNumber: strings.TrimSpace(d.PhoneNumber),
		App:         d.App,
		UserAppID:   strings.TrimSpace(d.UserAppID),
		Network:     fields.network,
		Source:      d.Source,
	}, nil
}

// WithdrawalInput converts a withdrawal draft into its payload.
func (d TransactionDraft) WithdrawalInput() (mobcash.WithdrawalTransactionInput, error) {
	fields, err := d.check()
	if err != nil {
		return mobcash.WithdrawalTransactionInput{}, err
	}

	return mobcash.WithdrawalTransactionInput{
		Amount:         fields.amount,
		PhoneNumber:    strings.TrimSpace(d.PhoneNumber),
		App:            d.App,
		UserAppID:      strings.TrimSpace(d.UserAppID),
		Network:        fields.network,
		WithdrawalCode: strings.TrimSpace(d.WithdrawalCode),
		Source:         d.Source,
	}, nil
}

// RechargeDraft is the form state of the recharge dialog. PaymentProof is
// filled from the uploaded attachment.
type RechargeDraft struct {
	Amount           string
	PaymentMethod    string
	PaymentReference string
	Notes            string
	PaymentProof     string
}

// NewRechargeDraft returns the defaults of a new recharge.
func NewRechargeDraft() RechargeDraft {
	return RechargeDraft{PaymentMethod: mobcash.PaymentMethodMobileMoney}
}

func (d RechargeDraft) check() (float64, error) {
	var c Checker

	amount := c.Amount("amount", d.Amount)
	c.Required("payment_reference", d.PaymentReference)

	switch d.PaymentMethod {
	case mobcash.PaymentMethodBankTransfer, mobcash.PaymentMethodMobileMoney,
		mobcash.PaymentMethodCard, mobcash.PaymentMethodCash:
	default:
		c.Add("payment_method", constants.ErrInvalidPaymentMethod.Error())
	}

	return amount, c.Err()
}

// Validate checks the amount, the method and the reference.
func (d RechargeDraft) Validate() error {
	_, err := d.check()

	return err
}

// Input converts the draft into a create payload.
func (d RechargeDraft) Input() (mobcash.CreateRechargeInput, error) {
	amount, err := d.check()
	if err != nil {
		return mobcash.CreateRechargeInput{}, err
	}

	return mobcash.CreateRechargeInput{
		Amount:           amount,
		PaymentMethod:    d.PaymentMethod,
		PaymentReference: strings.TrimSpace(d.PaymentReference),
		Notes:            strings.TrimSpace(d.Notes),
		PaymentProof:     d.PaymentProof,
	}, nil
}

// SetPaymentProof applies an uploaded URL.
func SetPaymentProof(d *RechargeDraft, url string) {
	d.PaymentProof = url
}

// NotificationDraft is the form state of the notification dialog. An empty
// UserID broadcasts.
type NotificationDraft struct {
	Title   string
	Content string
	UserID  string
}

// Validate checks the title and the content.
func (d NotificationDraft) Validate() error {
	var c Checker

	c.Required("title", d.Title)
	c.Required("content", d.Content)

	return c.Err()
}

// Input converts the draft into a send payload.
func (d NotificationDraft) Input() mobcash.SendNotificationInput {
	return mobcash.SendNotificationInput{
		Title:   strings.TrimSpace(d.Title),
		Content: strings.TrimSpace(d.Content),
		UserID:  strings.TrimSpace(d.UserID),
	}
}

func changed[T comparable](value, orig T) *T {
	if value == orig {
		return nil
	}

	return &value
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
