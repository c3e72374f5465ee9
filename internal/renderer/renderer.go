package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
)

// ErrRenderFailure indica que a página não pôde ser renderizada nesta
// tentativa. O chamador deve descartar a URL no passe atual, sem retry.
var ErrRenderFailure = errors.New("falha ao renderizar a página")

// Script injetado antes de qualquer script da página para suprimir os
// sinais mais comuns de automação (navigator.webdriver, plugins, idiomas).
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
`

// Renderer controla uma instância de navegador via Chrome DevTools Protocol.
// Uma instância atende um passe inteiro e deve ser liberada com Close.
type Renderer struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	delayMin    time.Duration
	delayMax    time.Duration
}

// New cria o navegador com as opções anti-bloqueio configuradas
func New(cfg *config.Config) (*Renderer, error) {
	userAgent := config.UserAgents[rand.Intn(len(config.UserAgents))]

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", "en-US"),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	r := &Renderer{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		delayMin:    cfg.DelayMin,
		delayMax:    cfg.DelayMax,
	}

	// Injeta o script de camuflagem em todo documento novo
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return err
	}))
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("erro ao iniciar o navegador: %w", err)
	}

	log.WithField("user_agent", userAgent).Debug("Navegador iniciado")
	return r, nil
}

// Render carrega a URL, executa os scripts da página e rola até o fim para
// disparar o carregamento preguiçoso de preço e avaliações antes do snapshot
func (r *Renderer) Render(url string) (string, error) {
	var html string
	err := chromedp.Run(r.ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(r.randomDelay()),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight/2);`, nil),
		chromedp.Sleep(1*time.Second),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight);`, nil),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailure, url, err)
	}
	return html, nil
}

// SettleReviews faz uma rolagem extra e devolve um novo snapshot do DOM,
// usado para capturar blocos de avaliações carregados tardiamente
func (r *Renderer) SettleReviews() (string, error) {
	var html string
	err := chromedp.Run(r.ctx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight/2);`, nil),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return html, nil
}

// Screenshot captura a página renderizada para diagnóstico offline
func (r *Renderer) Screenshot() ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(r.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("erro ao capturar screenshot: %w", err)
	}
	return buf, nil
}

// Close encerra o navegador. Seguro para uso em defer em qualquer caminho
// de saída, inclusive interrupção.
func (r *Renderer) Close() {
	r.cancelCtx()
	r.cancelAlloc()
	log.Debug("Navegador encerrado")
}

func (r *Renderer) randomDelay() time.Duration {
	if r.delayMax <= r.delayMin {
		return r.delayMin
	}
	return r.delayMin + time.Duration(rand.Int63n(int64(r.delayMax-r.delayMin)))
}
