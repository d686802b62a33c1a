package mobcash

import (
	"time"
)

// Network represents a mobile-money operator configuration.
type Network struct {
	ID                int       `json:"id"                 yaml:"id"`
	CreatedAt         time.Time `json:"created_at"         yaml:"created_at"`
	Name              string    `json:"name"               yaml:"name"`
	Placeholder       string    `json:"placeholder"        yaml:"placeholder"`
	PublicName        string    `json:"public_name"        yaml:"public_name"`
	CountryCode       string    `json:"country_code"       yaml:"country_code"`
	Indication        string    `json:"indication"         yaml:"indication"`
	Image             string    `json:"image"              yaml:"image"`
	WithdrawalMessage *string   `json:"withdrawal_message" yaml:"withdrawal_message"`
	DepositAPI        string    `json:"deposit_api"        yaml:"deposit_api"`
	WithdrawalAPI     string    `json:"withdrawal_api"     yaml:"withdrawal_api"`
	PaymentByLink     bool      `json:"payment_by_link"    yaml:"payment_by_link"`
	OTPRequired       bool      `json:"otp_required"       yaml:"otp_required"`
	Enable            bool      `json:"enable"             yaml:"enable"`
	DepositMessage    string    `json:"deposit_message"    yaml:"deposit_message"`
	ActiveForDeposit  bool      `json:"active_for_deposit" yaml:"active_for_deposit"`
	ActiveForWith     bool      `json:"active_for_with"    yaml:"active_for_with"`
}

// NetworkInput is the editable subset of a Network sent on create.
type NetworkInput struct {
	Name              string  `json:"name"               yaml:"name"`
	Placeholder       string  `json:"placeholder"        yaml:"placeholder"`
	PublicName        string  `json:"public_name"        yaml:"public_name"`
	CountryCode       string  `json:"country_code"       yaml:"country_code"`
	Indication        string  `json:"indication"         yaml:"indication"`
	Image             string  `json:"image"              yaml:"image"`
	WithdrawalMessage *string `json:"withdrawal_message" yaml:"withdrawal_message"`
	DepositAPI        string  `json:"deposit_api"        yaml:"deposit_api"`
	WithdrawalAPI     string  `json:"withdrawal_api"     yaml:"withdrawal_api"`
	PaymentByLink     bool    `json:"payment_by_link"    yaml:"payment_by_link"`
	OTPRequired       bool    `json:"otp_required"       yaml:"otp_required"`
	Enable            bool    `json:"enable"             yaml:"enable"`
	DepositMessage    string  `json:"deposit_message"    yaml:"deposit_message"`
	ActiveForDeposit  bool    `json:"active_for_deposit" yaml:"active_for_deposit"`
	ActiveForWith     bool    `json:"active_for_with"    yaml:"active_for_with"`
}

// NetworkPatch carries only the changed fields of a Network.
type NetworkPatch struct {
	Name              *string `json:"name,omitempty"               yaml:"name,omitempty"`
	Placeholder       *string `json:"placeholder,omitempty"        yaml:"placeholder,omitempty"`
	PublicName        *string `json:"public_name,omitempty"        yaml:"public_name,omitempty"`
	CountryCode       *string `json:"country_code,omitempty"       yaml:"country_code,omitempty"`
	Indication        *string `json:"indication,omitempty"         yaml:"indication,omitempty"`
	Image             *string `json:"image,omitempty"              yaml:"image,omitempty"`
	WithdrawalMessage *string `json:"withdrawal_message,omitempty" yaml:"withdrawal_message,omitempty"`
	DepositAPI        *string `json:"deposit_api,omitempty"        yaml:"deposit_api,omitempty"`
	WithdrawalAPI     *string `json:"withdrawal_api,omitempty"     yaml:"withdrawal_api,omitempty"`
	PaymentByLink     *bool   `json:"payment_by_link,omitempty"    yaml:"payment_by_link,omitempty"`
	OTPRequired       *bool   `json:"otp_required,omitempty"       yaml:"otp_required,omitempty"`
	Enable            *bool   `json:"enable,omitempty"             yaml:"enable,omitempty"`
	DepositMessage    *string `json:"deposit_message,omitempty"    yaml:"deposit_message,omitempty"`
	ActiveForDeposit  *bool   `json:"active_for_deposit,omitempty" yaml:"active_for_deposit,omitempty"`
	ActiveForWith     *bool   `json:"active_for_with,omitempty"    yaml:"active_for_with,omitempty"`
}

// Platform represents a betting application ("bet app") integrated with the service.
type Platform struct {
	ID                 string  `json:"id"                   yaml:"id"`
	Name               string  `json:"name"                 yaml:"name"`
	Image              string  `json:"image"                yaml:"image"`
	Enable             bool    `json:"enable"               yaml:"enable"`
	Hash               *string `json:"hash"                 yaml:"hash"`
	CashdeskID         *string `json:"cashdeskid"           yaml:"cashdeskid"`
	CashierPass        *string `json:"cashierpass"          yaml:"cashierpass"`
	DepositTutoLink    *string `json:"deposit_tuto_link"    yaml:"deposit_tuto_link"`
	WithdrawalTutoLink *string `json:"withdrawal_tuto_link" yaml:"withdrawal_tuto_link"`
	WhyWithdrawalFail  *string `json:"why_withdrawal_fail"  yaml:"why_withdrawal_fail"`
	Order              *int    `json:"order"                yaml:"order"`
	City               *string `json:"city"                 yaml:"city"`
	Street             *string `json:"street"               yaml:"street"`
	MinimunDeposit     float64 `json:"minimun_deposit"      yaml:"minimun_deposit"`
	MaxDeposit         float64 `json:"max_deposit"          yaml:"max_deposit"`
	MinimunWith        float64 `json:"minimun_with"         yaml:"minimun_with"`
	MaxWin             float64 `json:"max_win"              yaml:"max_win"`
}

// PlatformInput is the editable subset of a Platform sent on create.
type PlatformInput struct {
	Name               string  `json:"name"                 yaml:"name"`
	Image              string  `json:"image"                yaml:"image"`
	Enable             bool    `json:"enable"               yaml:"enable"`
	Hash               *string `json:"hash"                 yaml:"hash"`
	CashdeskID         *string `json:"cashdeskid"           yaml:"cashdeskid"`
	CashierPass        *string `json:"cashierpass"          yaml:"cashierpass"`
	DepositTutoLink    *string `json:"deposit_tuto_link"    yaml:"deposit_tuto_link"`
	WithdrawalTutoLink *string `json:"withdrawal_tuto_link" yaml:"withdrawal_tuto_link"`
	WhyWithdrawalFail  *string `json:"why_withdrawal_fail"  yaml:"why_withdrawal_fail"`
	Order              *int    `json:"order"                yaml:"order"`
	City               *string `json:"city"                 yaml:"city"`
	Street             *string `json:"street"               yaml:"street"`
	MinimunDeposit     float64 `json:"minimun_deposit"      yaml:"minimun_deposit"`
	MaxDeposit         float64 `json:"max_deposit"          yaml:"max_deposit"`
	MinimunWith        float64 `json:"minimun_with"         yaml:"minimun_with"`
	MaxWin             float64 `json:"max_win"              yaml:"max_win"`
}

// PlatformPatch carries only the changed fields of a Platform.
type PlatformPatch struct {
	Name               *string  `json:"name,omitempty"                 yaml:"name,omitempty"`
	Image              *string  `json:"image,omitempty"                yaml:"image,omitempty"`
	Enable             *bool    `json:"enable,omitempty"               yaml:"enable,omitempty"`
	Hash               *string  `json:"hash,omitempty"                 yaml:"hash,omitempty"`
	CashdeskID         *string  `json:"cashdeskid,omitempty"           yaml:"cashdeskid,omitempty"`
	CashierPass        *string  `json:"cashierpass,omitempty"          yaml:"cashierpass,omitempty"`
	DepositTutoLink    *string  `json:"deposit_tuto_link,omitempty"    yaml:"deposit_tuto_link,omitempty"`
	WithdrawalTutoLink *string  `json:"withdrawal_tuto_link,omitempty" yaml:"withdrawal_tuto_link,omitempty"`
	WhyWithdrawalFail  *string  `json:"why_withdrawal_fail,omitempty"  yaml:"why_withdrawal_fail,omitempty"`
	Order              *int     `json:"order,omitempty"                yaml:"order,omitempty"`
	City               *string  `json:"city,omitempty"                 yaml:"city,omitempty"`
	Street             *string  `json:"street,omitempty"               yaml:"street,omitempty"`
	MinimunDeposit     *float64 `json:"minimun_deposit,omitempty"      yaml:"minimun_deposit,omitempty"`
	MaxDeposit         *float64 `json:"max_deposit,omitempty"          yaml:"max_deposit,omitempty"`
	MinimunWith        *float64 `json:"minimun_with,omitempty"         yaml:"minimun_with,omitempty"`
	MaxWin             *float64 `json:"max_win,omitempty"              yaml:"max_win,omitempty"`
}

// PlatformSummary is the platform record embedded in deposits, cash desks
// and user app ids.
type PlatformSummary struct {
	ID                 string  `json:"id"                           yaml:"id"`
	Name               string  `json:"name"                         yaml:"name"`
	Image              string  `json:"image"                        yaml:"image"`
	Enable             bool    `json:"enable"                       yaml:"enable"`
	DepositTutoLink    *string `json:"deposit_tuto_link"            yaml:"deposit_tuto_link"`
	WithdrawalTutoLink *string `json:"withdrawal_tuto_link"         yaml:"withdrawal_tuto_link"`
	WhyWithdrawalFail  *string `json:"why_withdrawal_fail"          yaml:"why_withdrawal_fail"`
	Order              *int    `json:"order"                        yaml:"order"`
	City               *string `json:"city"                         yaml:"city"`
	Street             *string `json:"street"                       yaml:"street"`
	MinimunDeposit     float64 `json:"minimun_deposit"              yaml:"minimun_deposit"`
	MaxDeposit         float64 `json:"max_deposit"                  yaml:"max_deposit"`
	MinimunWith        float64 `json:"minimun_with"                 yaml:"minimun_with"`
	MaxWin             float64 `json:"max_win"                      yaml:"max_win"`
	ActiveForDeposit   *bool   `json:"active_for_deposit,omitempty" yaml:"active_for_deposit,omitempty"`
	ActiveForWith      *bool   `json:"active_for_with,omitempty"    yaml:"active_for_with,omitempty"`
}

// Bonus is a bonus credited to a user.
type Bonus struct {
	ID          int       `json:"id"           yaml:"id"`
	CreatedAt   time.Time `json:"created_at"   yaml:"created_at"`
	Amount      string    `json:"amount"       yaml:"amount"`
	ReasonBonus string    `json:"reason_bonus" yaml:"reason_bonus"`
	Transaction *string   `json:"transaction"  yaml:"transaction"`
	User        string    `json:"user"         yaml:"user"`
}

// Telephone is a phone number registered for a user on a network.
type Telephone struct {
	ID           int       `json:"id"            yaml:"id"`
	CreatedAt    time.Time `json:"created_at"    yaml:"created_at"`
	Phone        string    `json:"phone"         yaml:"phone"`
	User         *string   `json:"user"          yaml:"user"`
	TelegramUser *int64    `json:"telegram_user" yaml:"telegram_user"`
	Network      int       `json:"network"       yaml:"network"`
}

// TelephoneInput is the editable subset of a Telephone.
type TelephoneInput struct {
	Phone   string `json:"phone"   yaml:"phone"`
	Network int    `json:"network" yaml:"network"`
}

// TelephonePatch carries only the changed fields of a Telephone.
type TelephonePatch struct {
	Phone   *string `json:"phone,omitempty"   yaml:"phone,omitempty"`
	Network *int    `json:"network,omitempty" yaml:"network,omitempty"`
}

// UserAppID links a user to their account id on a betting application.
type UserAppID struct {
	ID           int              `json:"id"            yaml:"id"`
	UserAppID    string           `json:"user_app_id"   yaml:"user_app_id"`
	CreatedAt    time.Time        `json:"created_at"    yaml:"created_at"`
	User         *string          `json:"user"          yaml:"user"`
	TelegramUser *int64           `json:"telegram_user" yaml:"telegram_user"`
	AppName      string           `json:"app_name"      yaml:"app_name"`
	AppDetails   *PlatformSummary `json:"app_details"   yaml:"app_details"`
}

// UserAppIDInput is the editable subset of a UserAppID.
type UserAppIDInput struct {
	UserAppID string `json:"user_app_id" yaml:"user_app_id"`
	AppName   string `json:"app_name"    yaml:"app_name"`
}

// UserAppIDPatch carries only the changed fields of a UserAppID.
type UserAppIDPatch struct {
	UserAppID *string `json:"user_app_id,omitempty" yaml:"user_app_id,omitempty"`
	AppName   *string `json:"app_name,omitempty"    yaml:"app_name,omitempty"`
}

// Notification is a message delivered to one user or broadcast.
type Notification struct {
	ID        int       `json:"id"         yaml:"id"`
	Reference *string   `json:"reference"  yaml:"reference"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Content   string    `json:"content"    yaml:"content"`
	IsRead    bool      `json:"is_read"    yaml:"is_read"`
	Title     string    `json:"title"      yaml:"title"`
	User      string    `json:"user"       yaml:"user"`
}

// SendNotificationInput is a notification to send. UserID travels as a query
// parameter; an empty UserID broadcasts.
type SendNotificationInput struct {
	Content string `json:"content" yaml:"content"`
	Title   string `json:"title"   yaml:"title"`
	UserID  string `json:"-"       yaml:"user_id,omitempty"`
}

// Deposit is a float top-up made on a platform's cash desk.
type Deposit struct {
	ID        int             `json:"id"         yaml:"id"`
	BetApp    PlatformSummary `json:"bet_app"    yaml:"bet_app"`
	Amount    string          `json:"amount"     yaml:"amount"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
}

// CreateDepositInput is the payload of a new deposit.
type CreateDepositInput struct {
	Amount float64 `json:"amount"  yaml:"amount"`
	BetApp string  `json:"bet_app" yaml:"bet_app"`
}

// Caisse is the cash desk balance of a platform.
type Caisse struct {
	ID        int             `json:"id"         yaml:"id"`
	BetApp    PlatformSummary `json:"bet_app"    yaml:"bet_app"`
	Solde     string          `json:"solde"      yaml:"solde"`
	UpdatedAt *time.Time      `json:"updated_at" yaml:"updated_at"`
}

// Advertisement is a promotional image shown in the apps.
type Advertisement struct {
	ID        int        `json:"id"         yaml:"id"`
	Image     string     `json:"image"      yaml:"image"`
	Enable    bool       `json:"enable"     yaml:"enable"`
	CreatedAt *time.Time `json:"created_at" yaml:"created_at"`
}

// AdvertisementInput is the payload of a new advertisement.
type AdvertisementInput struct {
	Image  string `json:"image"  yaml:"image"`
	Enable bool   `json:"enable" yaml:"enable"`
}

// AdvertisementPatch carries only the changed fields of an Advertisement.
type AdvertisementPatch struct {
	Image  *string `json:"image,omitempty"  yaml:"image,omitempty"`
	Enable *bool   `json:"enable,omitempty" yaml:"enable,omitempty"`
}

// Coupon is a betting coupon published to users.
type Coupon struct {
	ID        int        `json:"id"         yaml:"id"`
	Code      string     `json:"code"       yaml:"code"`
	BetApp    string     `json:"bet_app"    yaml:"bet_app"`
	Enable    bool       `json:"enable"     yaml:"enable"`
	CreatedAt *time.Time `json:"created_at" yaml:"created_at"`
}

// CouponInput is the payload of a new coupon.
type CouponInput struct {
	Code   string `json:"code"    yaml:"code"`
	BetApp string `json:"bet_app" yaml:"bet_app"`
	Enable bool   `json:"enable"  yaml:"enable"`
}

// CouponPatch carries only the changed fields of a Coupon.
type CouponPatch struct {
	Code   *string `json:"code,omitempty"    yaml:"code,omitempty"`
	BetApp *string `json:"bet_app,omitempty" yaml:"bet_app,omitempty"`
	Enable *bool   `json:"enable,omitempty"  yaml:"enable,omitempty"`
}

// User is a registered web or mobile user.
type User struct {
	ID         string     `json:"id"          yaml:"id"`
	Email      string     `json:"email"       yaml:"email"`
	FirstName  string     `json:"first_name"  yaml:"first_name"`
	LastName   string     `json:"last_name"   yaml:"last_name"`
	Phone      *string    `json:"phone"       yaml:"phone"`
	IsActive   bool       `json:"is_active"   yaml:"is_active"`
	IsBlock    bool       `json:"is_block"    yaml:"is_block"`
	DateJoined *time.Time `json:"date_joined" yaml:"date_joined"`
}

// UserInput is the payload of a new user.
type UserInput struct {
	Email     string `json:"email"      yaml:"email"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name"  yaml:"last_name"`
	Phone     string `json:"phone"      yaml:"phone"`
}

// UserPatch carries only the changed fields of a User.
type UserPatch struct {
	FirstName *string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"  yaml:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"      yaml:"phone,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"  yaml:"is_active,omitempty"`
	IsBlock   *bool   `json:"is_block,omitempty"   yaml:"is_block,omitempty"`
}

// BotUser is a Telegram bot user.
type BotUser struct {
	ID             int        `json:"id"               yaml:"id"`
	TelegramUserID int64      `json:"telegram_user_id" yaml:"telegram_user_id"`
	FirstName      string     `json:"first_name"       yaml:"first_name"`
	Username       *string    `json:"username"         yaml:"username"`
	IsBlock        bool       `json:"is_block"         yaml:"is_block"`
	CreatedAt      *time.Time `json:"created_at"       yaml:"created_at"`
}

// BotUserInput is the payload of a new bot user.
type BotUserInput struct {
	TelegramUserID int64  `json:"telegram_user_id" yaml:"telegram_user_id"`
	FirstName      string `json:"first_name"       yaml:"first_name"`
}

// BotUserPatch carries only the changed fields of a BotUser.
type BotUserPatch struct {
	IsBlock *bool `json:"is_block,omitempty" yaml:"is_block,omitempty"`
}

// Transaction sources.
const (
	SourceWeb    = "web"
	SourceMobile = "mobile"
	SourceBot    = "bot"
)

// Transaction types as reported in type_trans.
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

// Transaction is a deposit or withdrawal between a network and a platform.
type Transaction struct {
	ID             int        `json:"id"                        yaml:"id"`
	Reference      string     `json:"reference"                 yaml:"reference"`
	TypeTrans      string     `json:"type_trans"                yaml:"type_trans"`
	Amount         float64    `json:"amount"                    yaml:"amount"`
	Status         string     `json:"status"                    yaml:"status"`
	PhoneNumber    string     `json:"phone_number"              yaml:"phone_number"`
	App            string     `json:"app"                       yaml:"app"`
	UserAppID      string     `json:"user_app_id"               yaml:"user_app_id"`
	Network        int        `json:"network"                   yaml:"network"`
	Source         string     `json:"source"                    yaml:"source"`
	WithdrawalCode *string    `json:"withdriwal_code,omitempty" yaml:"withdriwal_code,omitempty"`
	CreatedAt      *time.Time `json:"created_at"                yaml:"created_at"`
}

// DepositTransactionInput is the payload of a new deposit transaction.
type DepositTransactionInput struct {
	Amount      float64 `json:"amount"       yaml:"amount"`
	PhoneNumber string  `json:"phone_number" yaml:"phone_number"`
	App         string  `json:"app"          yaml:"app"`
	UserAppID   string  `json:"user_app_id"  yaml:"user_app_id"`
	Network     int     `json:"network"      yaml:"network"`
	Source      string  `json:"source"       yaml:"source"`
}

// WithdrawalTransactionInput is the payload of a new withdrawal transaction.
// The backend spells the withdrawal code field "withdriwal_code".
type WithdrawalTransactionInput struct {
	Amount         float64 `json:"amount"          yaml:"amount"`
	PhoneNumber    string  `json:"phone_number"    yaml:"phone_number"`
	App            string  `json:"app"             yaml:"app"`
	UserAppID      string  `json:"user_app_id"     yaml:"user_app_id"`
	Network        int     `json:"network"         yaml:"network"`
	WithdrawalCode string  `json:"withdriwal_code" yaml:"withdriwal_code"`
	Source         string  `json:"source"          yaml:"source"`
}

// Recharge payment methods.
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMobileMoney  = "mobile_money"
	PaymentMethodCard         = "card"
	PaymentMethodCash         = "cash"
)

// Recharge is a request to credit the partner account, backed by a payment proof.
type Recharge struct {
	ID               int        `json:"id"                yaml:"id"`
	Amount           string     `json:"amount"            yaml:"amount"`
	PaymentMethod    string     `json:"payment_method"    yaml:"payment_method"`
	PaymentReference string     `json:"payment_reference" yaml:"payment_reference"`
	Notes            string     `json:"notes"             yaml:"notes"`
	PaymentProof     *string    `json:"payment_proof"     yaml:"payment_proof"`
	Status           string     `json:"status"            yaml:"status"`
	CreatedAt        *time.Time `json:"created_at"        yaml:"created_at"`
}

// CreateRechargeInput is the payload of a new recharge. PaymentProof holds
// the URL returned by the upload endpoint.
type CreateRechargeInput struct {
	Amount           float64 `json:"amount"                  yaml:"amount"`
	PaymentMethod    string  `json:"payment_method"          yaml:"payment_method"`
	PaymentReference string  `json:"payment_reference"       yaml:"payment_reference"`
	Notes            string  `json:"notes,omitempty"         yaml:"notes,omitempty"`
	PaymentProof     string  `json:"payment_proof,omitempty" yaml:"payment_proof,omitempty"`
}

// UploadResult is the response of the file upload endpoint.
type UploadResult struct {
	URL string `json:"url" yaml:"url"`
}
