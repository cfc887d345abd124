package tui

// Display strings. French only, not localised.
const (
	textLoading           = "Chargement..."
	textHeading           = "Liste de films"
	textCategory          = "Catégorie: "
	textLikes             = "Likes: "
	textDislikes          = "Dislikes: "
	textLikeButton        = "Likes"
	textEmptyCategory     = "Aucun film disponible dans cette catégorie."
	textPageOf            = "Page %d sur %d"
	textPerPage           = "Nombre de films par page :"
	textFilterPlaceholder = "Sélectionner des catégories"
	textNoCategories      = "Aucune catégorie disponible"
	textDeleted           = "Film supprimé : %s"
	textLikeDisabled      = "Like indisponible : film déjà marqué dislike"
	textDislikeDisabled   = "Dislike indisponible : film déjà marqué like"
	textRefreshing        = "Rechargement du catalogue..."
)
