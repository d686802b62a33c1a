package client

// Cache resource names.
const (
	ResourceNetworks        = "networks"
	ResourcePlatforms       = "platforms"
	ResourceTelephones      = "telephones"
	ResourceUserAppIDs      = "user-app-ids"
	ResourceNotifications   = "notifications"
	ResourceBonuses         = "bonuses"
	ResourceDeposits        = "deposits"
	ResourceCaisses         = "caisses"
	ResourceAdvertisements  = "advertisements"
	ResourceTransactions    = "transactions"
	ResourceBotTransactions = "bot-transactions"
	ResourceRecharges       = "recharges"
	ResourceUsers           = "users"
	ResourceBotUsers        = "bot-users"
	ResourceCoupons         = "coupons"
	ResourceDashboard       = "dashboard-stats"
)

// Endpoint paths that are not the collection path of a resource.
const (
	DepositCreatePath = "/mobcash/deposit"
	DashboardPath     = "/mobcash/dashboard-stats"
)

//nolint:gochecknoglobals // fixed routing table of the backend
var (
	networksEndpoint = Endpoint{
		Path:  "/mobcash/network",
		Name:  ResourceNetworks,
		Label: "network",
		Messages: Messages{
			Created: "Réseau créé avec succès!",
			Updated: "Réseau mis à jour avec succès!",
			Deleted: "Réseau supprimé avec succès!",
		},
	}

	platformsEndpoint = Endpoint{
		Path:  "/mobcash/plateform",
		Name:  ResourcePlatforms,
		Label: "platform",
		Messages: Messages{
			Created: "Plateforme créée avec succès!",
			Updated: "Plateforme mise à jour avec succès!",
			Deleted: "Plateforme supprimée avec succès!",
		},
	}

	telephonesEndpoint = Endpoint{
		Path:          "/mobcash/user-phone/",
		Name:          ResourceTelephones,
		Label:         "telephone",
		TrailingSlash: true,
		Messages: Messages{
			Created: "Téléphone créé avec succès!",
			Updated: "Téléphone mis à jour avec succès!",
			Deleted: "Téléphone supprimé avec succès!",
		},
	}

	userAppIDsEndpoint = Endpoint{
		Path:          "/mobcash/user-app-id/",
		Name:          ResourceUserAppIDs,
		Label:         "user app id",
		TrailingSlash: true,
		Messages: Messages{
			Created: "ID d'application créé avec succès!",
			Updated: "ID d'application mis à jour avec succès!",
			Deleted: "ID d'application supprimé avec succès!",
		},
	}

	notificationsEndpoint = Endpoint{
		Path:     "/mobcash/notification",
		Name:     ResourceNotifications,
		Label:    "notification",
		Messages: Messages{Created: "Notification envoyée avec succès!"},
	}

	bonusesEndpoint = Endpoint{
		Path:  "/mobcash/bonus",
		Name:  ResourceBonuses,
		Label: "bonus",
	}

	depositsEndpoint = Endpoint{
		Path:       "/mobcash/list-deposit",
		Name:       ResourceDeposits,
		Label:      "deposit",
		Dependents: []string{ResourceCaisses, ResourceDashboard},
		Messages:   Messages{Created: "Dépôt créé avec succès!"},
	}

	caissesEndpoint = Endpoint{
		Path:  "/mobcash/caisses",
		Name:  ResourceCaisses,
		Label: "caisse",
	}

	advertisementsEndpoint = Endpoint{
		Path:  "/mobcash/ads",
		Name:  ResourceAdvertisements,
		Label: "advertisement",
		Messages: Messages{
			Created: "Publicité créée avec succès!",
			Updated: "Publicité mise à jour avec succès!",
			Deleted: "Publicité supprimée avec succès!",
		},
	}

	transactionsEndpoint = Endpoint{
		Path:       "/mobcash/transaction",
		Name:       ResourceTransactions,
		Label:      "transaction",
		Dependents: []string{ResourceDashboard},
		Messages:   Messages{Created: "Transaction créée avec succès!"},
	}

	botTransactionsEndpoint = Endpoint{
		Path:       "/mobcash/bot-transaction",
		Name:       ResourceBotTransactions,
		Label:      "bot transaction",
		Dependents: []string{ResourceDashboard},
		Messages:   Messages{Created: "Transaction bot créée avec succès!"},
	}

	rechargesEndpoint = Endpoint{
		Path:     "/mobcash/recharge",
		Name:     ResourceRecharges,
		Label:    "recharge",
		Messages: Messages{Created: "Demande de recharge envoyée avec succès!"},
	}

	usersEndpoint = Endpoint{
		Path:  "/auth/users",
		Name:  ResourceUsers,
		Label: "user",
		Messages: Messages{
			Created: "Utilisateur créé avec succès!",
			Updated: "Utilisateur mis à jour avec succès!",
			Deleted: "Utilisateur supprimé avec succès!",
		},
	}

	botUsersEndpoint = Endpoint{
		Path:  "/mobcash/bot-users",
		Name:  ResourceBotUsers,
		Label: "bot user",
		Messages: Messages{
			Created: "Utilisateur bot créé avec succès!",
			Updated: "Utilisateur bot mis à jour avec succès!",
			Deleted: "Utilisateur bot supprimé avec succès!",
		},
	}

	couponsEndpoint = Endpoint{
		Path:  "/mobcash/coupon",
		Name:  ResourceCoupons,
		Label: "coupon",
		Messages: Messages{
			Created: "Coupon créé avec succès!",
			Updated: "Coupon mis à jour avec succès!",
			Deleted: "Coupon supprimé avec succès!",
		},
	}
)
