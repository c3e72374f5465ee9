package scraper

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"vigia-precos/internal/models"
)

// SaveDiagnostic grava o artefato de diagnóstico do registro em um arquivo
// PNG com nome único dentro de dir. Retorna o caminho gravado, ou vazio
// quando o registro não carrega artefato.
func SaveDiagnostic(dir string, rec *models.ProductRecord) (string, error) {
	if len(rec.Diagnostic) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório de diagnósticos: %w", err)
	}

	path := filepath.Join(dir, uuid.New().String()+".png")
	if err := os.WriteFile(path, rec.Diagnostic, 0o644); err != nil {
		return "", fmt.Errorf("erro ao gravar diagnóstico: %w", err)
	}
	return path, nil
}
