package commands

import (
	"github.com/charmbracelet/huh"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

func isRequired(field string) func(string) error {
	return func(s string) error {
		return form.Required(field, s) //nolint:wrapcheck // shown inline by the form
	}
}

func isAmount(field string) func(string) error {
	return func(s string) error {
		_, err := form.ParseAmount(field, s)

		return err //nolint:wrapcheck // shown inline by the form
	}
}

func isID(field string) func(string) error {
	return func(s string) error {
		_, err := form.ParseID(field, s)

		return err //nolint:wrapcheck // shown inline by the form
	}
}

func networkForm(d *form.NetworkDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&d.Name).Validate(isRequired("name")),
			huh.NewInput().Title("Public name").Value(&d.PublicName).Validate(isRequired("public_name")),
			huh.NewInput().Title("Country code").Placeholder("BJ").Value(&d.CountryCode).Validate(isRequired("country_code")),
			huh.NewInput().Title("Dialing prefix").Placeholder("229").Value(&d.Indication),
			huh.NewInput().Title("Phone placeholder").Value(&d.Placeholder),
		),
		huh.NewGroup(
			huh.NewInput().Title("Deposit API").Value(&d.DepositAPI).Validate(isRequired("deposit_api")),
			huh.NewInput().Title("Withdrawal API").Value(&d.WithdrawalAPI).Validate(isRequired("withdrawal_api")),
			huh.NewText().Title("Deposit message").Value(&d.DepositMessage),
			huh.NewText().Title("Withdrawal message").Value(&d.WithdrawalMessage),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Payment by link").Value(&d.PaymentByLink),
			huh.NewConfirm().Title("OTP required").Value(&d.OTPRequired),
			huh.NewConfirm().Title("Active for deposit").Value(&d.ActiveForDeposit),
			huh.NewConfirm().Title("Active for withdrawal").Value(&d.ActiveForWith),
			huh.NewConfirm().Title("Enabled").Value(&d.Enable),
		),
	)
}

func platformForm(d *form.PlatformDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&d.Name).Validate(isRequired("name")),
			huh.NewInput().Title("Logo URL").Value(&d.Image),
			huh.NewConfirm().Title("Enabled").Value(&d.Enable),
		),
		huh.NewGroup(
			huh.NewInput().Title("Minimum deposit").Value(&d.MinimunDeposit).Validate(isAmount("minimun_deposit")),
			huh.NewInput().Title("Maximum deposit").Value(&d.MaxDeposit).Validate(isAmount("max_deposit")),
			huh.NewInput().Title("Minimum withdrawal").Value(&d.MinimunWith).Validate(isAmount("minimun_with")),
			huh.NewInput().Title("Maximum win").Value(&d.MaxWin).Validate(isAmount("max_win")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Deposit tutorial link").Value(&d.DepositTutoLink),
			huh.NewInput().Title("Withdrawal tutorial link").Value(&d.WithdrawalTutoLink),
			huh.NewText().Title("Why withdrawals fail").Value(&d.WhyWithdrawalFail),
			huh.NewInput().Title("City").Value(&d.City),
			huh.NewInput().Title("Street").Value(&d.Street),
		),
	)
}

// transactionForm asks for the fields of a deposit or withdrawal; the
// withdrawal code is only asked for withdrawals.
func transactionForm(d *form.TransactionDraft) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Amount").Value(&d.Amount).Validate(isAmount("amount")),
		huh.NewInput().Title("Phone number").Value(&d.PhoneNumber).Validate(isRequired("phone_number")),
		huh.NewInput().Title("Platform ID").Value(&d.App).Validate(isRequired("app")),
		huh.NewInput().Title("Player ID on the platform").Value(&d.UserAppID).Validate(isRequired("user_app_id")),
		huh.NewInput().Title("Network ID").Value(&d.Network).Validate(isID("network")),
	}

	if d.Type == mobcash.TransactionTypeWithdrawal {
		fields = append(fields,
			huh.NewInput().Title("Withdrawal code").Value(&d.WithdrawalCode).Validate(isRequired("withdriwal_code")))
	}

	fields = append(fields, huh.NewSelect[string]().
		Title("Source").
		Options(
			huh.NewOption("Web", mobcash.SourceWeb),
			huh.NewOption("Mobile", mobcash.SourceMobile),
			huh.NewOption("Bot", mobcash.SourceBot),
		).
		Value(&d.Source))

	return huh.NewForm(huh.NewGroup(fields...))
}

func depositForm(d *form.DepositDraft) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Platform ID").Value(&d.BetApp).Validate(isRequired("bet_app")),
		huh.NewInput().Title("Amount").Value(&d.Amount).Validate(isAmount("amount")),
	))
}

func rechargeForm(d *form.RechargeDraft) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Amount").Value(&d.Amount).Validate(isAmount("amount")),
		huh.NewSelect[string]().
			Title("Payment method").
			Options(
				huh.NewOption("Mobile money", mobcash.PaymentMethodMobileMoney),
				huh.NewOption("Bank transfer", mobcash.PaymentMethodBankTransfer),
				huh.NewOption("Card", mobcash.PaymentMethodCard),
				huh.NewOption("Cash", mobcash.PaymentMethodCash),
			).
			Value(&d.PaymentMethod),
		huh.NewInput().Title("Payment reference").Value(&d.PaymentReference).Validate(isRequired("payment_reference")),
		huh.NewText().Title("Notes").Value(&d.Notes),
	))
}

func notificationForm(d *form.NotificationDraft) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&d.Title).Validate(isRequired("title")),
		huh.NewText().Title("Content").Value(&d.Content).Validate(isRequired("content")),
		huh.NewInput().Title("User ID").Description("Leave empty to notify every user").Value(&d.UserID),
	))
}
