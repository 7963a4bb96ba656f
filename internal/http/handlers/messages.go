package handlers

// User-facing notices, localized the way the studio UI words them.
var messages = map[string]map[string]string{
	"pt": {
		"credential_missing": "Por favor, configure sua chave API.",
		"no_assets": "Envia pelo menos 1 imagem de joia para começar.",
		"unclassified_asset": "Seleciona o tipo para cada joia enviada.",
		"reference_missing": "Envia a foto da modelo.",
		"asset_limit": "Limite de 4 imagens atingido.",
		"generation_error": "Erro na API. Verifique sua chave API e conexão.",
		"permission_denied": "Acesso Negado aos Modelos Pro. Verifique sua chave API.",
		"regeneration_error": "Erro ao regenerar.",
		"video_error": "Erro na geração de vídeo.",
		"download_error": "Falha no download.",
		"session_busy": "Processando...",
		"session_state": "Nenhum resultado para refinar.",
		"invalid_credential": "Chave API inválida.",
	},
	"en": {
		"credential_missing": "Please configure your API key.",
		"no_assets": "Upload at least 1 jewelry image to start.",
		"unclassified_asset": "Select the type for each uploaded jewelry.",
		"reference_missing": "Please upload the model photo.",
		"asset_limit": "Limit of 4 images reached.",
		"generation_error": "API Error. Check your API key and connection.",
		"permission_denied": "Pro Access Denied. Check your API key.",
		"regeneration_error": "Error regenerating.",
		"video_error": "Video generation error.",
		"download_error": "Download failed.",
		"session_busy": "Processing...",
		"session_state": "No result to refine.",
		"invalid_credential": "Invalid API key.",
	},
}

func message(locale, key string) string {
	table, ok := messages[locale]
	if !ok {
		table = messages["en"]
	}
	if msg, ok := table[key]; ok {
		return msg
	}
	return messages["en"][key]
}
