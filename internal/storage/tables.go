package storage

// Logical table names.
const (
	TableUsers   = "Users"
	TableFollows = "Follows"
	TableCatalog = "TeamCatalog"
)

// Users columns.
const (
	ColUserID       = "User ID"
	ColUsername     = "Username"
	ColName         = "İsim"
	ColRegisteredAt = "Kayıt Tarihi"
	ColLastActive   = "Son Aktivite"
	ColActive       = "Aktif"
)

// Follows columns.
const (
	ColTeamID   = "Takım ID"
	ColTeamName = "Takım Adı"
	ColSettings = "Bildirim Ayarları"
	ColAddedAt  = "Eklenme Tarihi"
)

// TeamCatalog columns. ColTeamName is shared with Follows.
const (
	ColID        = "ID"
	ColLeague    = "Lig"
	ColAlternate = "Alternatif Ad"
	ColCountry   = "Ülke"
	ColLogoURL   = "Logo URL"
)

// Fixed headers, in column order.
var (
	UsersColumns   = []string{ColUserID, ColUsername, ColName, ColRegisteredAt, ColLastActive, ColActive}
	FollowsColumns = []string{ColUserID, ColTeamID, ColTeamName, ColSettings, ColAddedAt}
	CatalogColumns = []string{ColID, ColLeague, ColTeamName, ColAlternate, ColCountry, ColLogoURL}
)
