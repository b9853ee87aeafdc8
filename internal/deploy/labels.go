package deploy

var statusLabels = map[Status]string{
	StatusPending:  "En attente",
	StatusCreating: "Création...",
	StatusRunning:  "En cours",
	StatusFailed:   "Échoué",
	StatusStopped:  "Arrêté",
	StatusDeleted:  "Supprimé",
}

// StatusLabel returns the French label for status. Unknown values are returned unchanged.
func StatusLabel(status Status) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// User-facing messages.
const (
	MsgNoDeployments   = "Aucun déploiement"
	MsgLoadError       = "Erreur de chargement"
	MsgCreateStarted   = "Déploiement démarré avec succès!"
	MsgCreateFailed    = "Erreur lors de la création du déploiement"
	MsgDeleted         = "Déploiement supprimé"
	MsgDeleteFailed    = "Erreur lors de la suppression"
	MsgRestarted       = "Déploiement redémarré"
	MsgRestartFailed   = "Erreur lors du redémarrage"
	MsgLogsFailed      = "Erreur lors de la récupération des logs"
	MsgNoLogs          = "Aucun log disponible"
	MsgConfirmDelete   = "Êtes-vous sûr de vouloir supprimer ce déploiement ?"
	MsgProgressRunning = "Déploiement en cours..."
	MsgProgressDone    = "Déploiement terminé"
	MsgNotFound        = "Déploiement introuvable"
)

// ErrorNotice formats a backend message the way notifications show it.
func ErrorNotice(message string) string {
	return "Erreur: " + message
}
