package mobcash

// DashboardStats is the payload of the dashboard statistics endpoint.
type DashboardStats struct {
	Summary        StatsSummary       `json:"dashboard_stats"     yaml:"dashboard_stats"`
	Volume         VolumeTransactions `json:"volume_transactions" yaml:"volume_transactions"`
	UserGrowth     UserGrowth         `json:"user_growth"         yaml:"user_growth"`
	ReferralSystem ReferralSystem     `json:"referral_system"     yaml:"referral_system"`
}

// StatsSummary holds the headline counters of the dashboard. Counters the
// backend may omit or null are pointers.
type StatsSummary struct {
	TotalUsers        *float64            `json:"total_users"         yaml:"total_users"`
	ActiveUsers       *float64            `json:"active_users"        yaml:"active_users"`
	InactiveUsers     *float64            `json:"inactive_users"      yaml:"inactive_users"`
	TotalTransactions *float64            `json:"total_transactions"  yaml:"total_transactions"`
	TotalBonus        *float64            `json:"total_bonus"         yaml:"total_bonus"`
	TransactionsByApp map[string]AppTotal `json:"transactions_by_app" yaml:"transactions_by_app"`
	Rewards           RewardStats         `json:"rewards"             yaml:"rewards"`
	Disbursements     DisbursementStats   `json:"disbursements"       yaml:"disbursements"`
	Advertisements    ActiveCount         `json:"advertisements"      yaml:"advertisements"`
	Coupons           ActiveCount         `json:"coupons"             yaml:"coupons"`
	BotStats          BotStats            `json:"bot_stats"           yaml:"bot_stats"`
}

// AppTotal aggregates the transactions of one betting application.
type AppTotal struct {
	TotalAmount float64 `json:"total_amount" yaml:"total_amount"`
	Count       int     `json:"count"        yaml:"count"`
}

// RewardStats is the amount of rewards paid.
type RewardStats struct {
	Total *float64 `json:"total" yaml:"total"`
}

// DisbursementStats counts disbursements.
type DisbursementStats struct {
	Amount *float64 `json:"amount" yaml:"amount"`
	Count  *float64 `json:"count"  yaml:"count"`
}

// ActiveCount is a total with the number of enabled items.
type ActiveCount struct {
	Total  *float64 `json:"total"  yaml:"total"`
	Active *float64 `json:"active" yaml:"active"`
}

// BotStats counts the transactions made through the Telegram bot.
type BotStats struct {
	TotalTransactions int `json:"total_transactions" yaml:"total_transactions"`
	TotalDeposits     int `json:"total_deposits"     yaml:"total_deposits"`
	TotalWithdrawals  int `json:"total_withdrawals"  yaml:"total_withdrawals"`
}

// VolumeTransactions is the money volume section of the dashboard.
type VolumeTransactions struct {
	NetVolume   *float64        `json:"net_volume"  yaml:"net_volume"`
	Deposits    AmountTotal     `json:"deposits"    yaml:"deposits"`
	Withdrawals AmountTotal     `json:"withdrawals" yaml:"withdrawals"`
	Evolution   VolumeEvolution `json:"evolution"   yaml:"evolution"`
}

// AmountTotal wraps a total amount.
type AmountTotal struct {
	TotalAmount *float64 `json:"total_amount" yaml:"total_amount"`
}

// VolumeEvolution holds the volume series per period granularity.
type VolumeEvolution struct {
	Daily   []VolumeBucket `json:"daily"   yaml:"daily"`
	Weekly  []VolumeBucket `json:"weekly"  yaml:"weekly"`
	Monthly []VolumeBucket `json:"monthly" yaml:"monthly"`
	Yearly  []VolumeBucket `json:"yearly"  yaml:"yearly"`
}

// VolumeBucket is one point of a volume series. Exactly one of Date, Week,
// Month or Year is set, depending on the series it belongs to.
type VolumeBucket struct {
	Date        string  `json:"date,omitempty"  yaml:"date,omitempty"`
	Week        string  `json:"week,omitempty"  yaml:"week,omitempty"`
	Month       string  `json:"month,omitempty" yaml:"month,omitempty"`
	Year        string  `json:"year,omitempty"  yaml:"year,omitempty"`
	TypeTrans   string  `json:"type_trans"      yaml:"type_trans"`
	TotalAmount float64 `json:"total_amount"    yaml:"total_amount"`
	Count       int     `json:"count"           yaml:"count"`
}

// UserGrowth is the user acquisition section of the dashboard.
type UserGrowth struct {
	NewUsers         NewUsers      `json:"new_users"          yaml:"new_users"`
	UsersBySource    []SourceCount `json:"users_by_source"    yaml:"users_by_source"`
	ActiveUsersCount *float64      `json:"active_users_count" yaml:"active_users_count"`
}

// NewUsers holds the sign-up series per period granularity.
type NewUsers struct {
	Daily   []UserBucket `json:"daily"   yaml:"daily"`
	Weekly  []UserBucket `json:"weekly"  yaml:"weekly"`
	Monthly []UserBucket `json:"monthly" yaml:"monthly"`
}

// UserBucket is one point of a sign-up series.
type UserBucket struct {
	Date  string `json:"date,omitempty"  yaml:"date,omitempty"`
	Week  string `json:"week,omitempty"  yaml:"week,omitempty"`
	Month string `json:"month,omitempty" yaml:"month,omitempty"`
	Count int    `json:"count"           yaml:"count"`
}

// SourceCount is the number of users registered through one source.
type SourceCount struct {
	Source string `json:"source" yaml:"source"`
	Count  int    `json:"count"  yaml:"count"`
}

// ReferralSystem summarizes sponsorship activity.
type ReferralSystem struct {
	ParrainagesCount   *float64 `json:"parrainages_count"    yaml:"parrainages_count"`
	TotalReferralBonus *float64 `json:"total_referral_bonus" yaml:"total_referral_bonus"`
	ActivationRate     *float64 `json:"activation_rate"      yaml:"activation_rate"`
}
