// Package dashboard declares the route table of the dashboard application.
// The table is built once at startup from Routes and never modified.
package dashboard

import "github.com/vitalvas/navroute/router"

// View identifiers activated by the table.
const (
	Dashboard           = "Dashboard"
	Accounts            = "Accounts"
	Vendors             = "Vendors"
	Models              = "Models"
	Compliance          = "Compliance"
	PKI                 = "PKI"
	Validators          = "Validators"
	Upgrades            = "Upgrades"
	LegacyWallet        = "LegacyWallet"
	KeplrConnectionDocs = "KeplrConnectionDocs"
	Transactions        = "Transactions"
	FirmwareAvailable   = "FirmwareAvailable"
	FirmwareDetail      = "FirmwareDetail"
	FirmwareScanQueue   = "FirmwareScanQueue"
	FirmwareScanResults = "FirmwareScanResults"

	// NotFound is rendered by hosts for paths the table does not match.
	// No route activates it.
	NotFound = "NotFound"
)

// Route names for building paths with Table.URL.
const (
	RouteDashboard           = "dashboard"
	RouteAccounts            = "accounts"
	RouteVendors             = "vendors"
	RouteModels              = "models"
	RouteCompliance          = "compliance"
	RoutePKI                 = "pki"
	RouteValidators          = "validators"
	RouteUpgrades            = "upgrades"
	RouteLegacyWallet        = "legacy-wallet"
	RouteKeplrWallet         = "keplr-wallet"
	RouteTransactions        = "transactions"
	RouteFirmwareSecurity    = "firmware-security"
	RouteFirmwareAvailable   = "firmware-available"
	RouteFirmwareDetail      = "firmware-detail"
	RouteFirmwareScanQueue   = "firmware-scan-queue"
	RouteFirmwareScanResults = "firmware-scan-results"
)

// Routes returns the route entries in table order. Order is significant:
// the first matching entry wins.
func Routes() []*router.Route {
	return []*router.Route{
		router.View("/", Dashboard).Name(RouteDashboard),
		router.View("/accounts", Accounts).Name(RouteAccounts),
		router.View("/vendors", Vendors).Name(RouteVendors),
		router.View("/models", Models).Name(RouteModels),
		router.View("/compliance", Compliance).Name(RouteCompliance),
		router.View("/pki", PKI).Name(RoutePKI),
		router.View("/validators", Validators).Name(RouteValidators),
		router.View("/upgrades", Upgrades).Name(RouteUpgrades),
		router.View("/legacy-wallet", LegacyWallet).Name(RouteLegacyWallet),
		router.View("/keplr-wallet", KeplrConnectionDocs).Name(RouteKeplrWallet),
		router.View("/transactions/blocks/:height?", Transactions).Name(RouteTransactions),
		router.Redirect("/firmware-security", "/firmware-security/available-firmware").Name(RouteFirmwareSecurity),
		router.View("/firmware-security/available-firmware", FirmwareAvailable).Name(RouteFirmwareAvailable),
		router.View("/firmware-security/firmware/:sha256", FirmwareDetail).Name(RouteFirmwareDetail),
		router.View("/firmware-security/scan-queue", FirmwareScanQueue).Name(RouteFirmwareScanQueue),
		router.View("/firmware-security/scan-results", FirmwareScanResults).Name(RouteFirmwareScanResults),
	}
}

// NewTable builds the dashboard route table.
func NewTable(opts ...router.Option) (*router.Table, error) {
	return router.NewTable(Routes(), opts...)
}

var titles = map[string]string{
	Dashboard:           "Dashboard",
	Accounts:            "Accounts",
	Vendors:             "Vendors",
	Models:              "Models",
	Compliance:          "Compliance",
	PKI:                 "PKI",
	Validators:          "Validators",
	Upgrades:            "Upgrades",
	LegacyWallet:        "Legacy Wallet",
	KeplrConnectionDocs: "Keplr Wallet",
	Transactions:        "Transactions",
	FirmwareAvailable:   "Available Firmware",
	FirmwareDetail:      "Firmware Detail",
	FirmwareScanQueue:   "Firmware Scan Queue",
	FirmwareScanResults: "Firmware Scan Results",
	NotFound:            "Not Found",
}

// Title returns the document title for a view, falling back to the view
// identifier itself.
func Title(view string) string {
	if t, ok := titles[view]; ok {
		return t
	}
	return view
}
