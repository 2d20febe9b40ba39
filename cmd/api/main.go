package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notanothermarketer/leadgen-api/internal/infra/database"
	"github.com/notanothermarketer/leadgen-api/internal/infra/http/handlers"
	"github.com/notanothermarketer/leadgen-api/internal/infra/http/middleware"
	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/loops"
	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/n8n"
	"github.com/notanothermarketer/leadgen-api/internal/infra/integration/stripe"
	"github.com/notanothermarketer/leadgen-api/internal/infra/mail"
	"github.com/notanothermarketer/leadgen-api/internal/infra/queue"
	"github.com/notanothermarketer/leadgen-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Banco fora do ar: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(os.Getenv("AMQP_URL"))
	if err != nil {
		log.Fatalf("❌ RabbitMQ fora do ar: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	campaignRepo := database.NewCampaignRepository(db)
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways e Adapters (ciclo de vida é daqui, não dos componentes)
	var gateway usecase.PaymentGateway
	var verifier handlers.SignatureVerifier
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		client := stripe.NewClient(key, os.Getenv("STRIPE_WEBHOOK_SECRET"), os.Getenv("STRIPE_API_URL"))
		gateway = client
		verifier = client
	} else {
		log.Println("⚠️ STRIPE_SECRET_KEY ausente — checkout vai responder CONFIGURATION_ERROR")
	}

	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	notifier := n8n.NewClient(os.Getenv("N8N_WEBHOOK_URL"))
	syncer := loops.NewClient(os.Getenv("LOOPS_API_KEY"))

	var mailSender usecase.EmailService
	if host := os.Getenv("MAIL_HOST"); host != "" {
		port, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if port == 0 {
			port = 587
		}
		mailSender = mail.NewEmailSender(
			host, port, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"), os.Getenv("MAIL_FROM"),
		)
	}

	// 3. Worker (consome campanha criada e avisa pipeline + lista de marketing)
	worker := queue.NewWorker(rabbitMQ.Ch, notifier, syncer)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	resolveUC := usecase.NewResolveCampaignUseCase(campaignRepo, producer)
	listUC := usecase.NewListLeadsUseCase(campaignRepo, leadRepo)
	checkoutUC := usecase.NewCreateCheckoutUseCase(campaignRepo, gateway, os.Getenv("APP_BASE_URL"))
	confirmUC := usecase.NewConfirmPaymentUseCase(campaignRepo, gateway, mailSender)
	exportUC := usecase.NewExportLeadsUseCase(campaignRepo, leadRepo)

	// 5. Handlers
	campaignHandler := handlers.NewCampaignHandler(resolveUC)
	leadsHandler := handlers.NewLeadsHandler(listUC)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUC, confirmUC)
	webhookHandler := handlers.NewWebhookHandler(verifier, confirmUC)
	exportHandler := handlers.NewExportHandler(exportUC)
	pipelineHandler := handlers.NewPipelineHandler(campaignRepo, leadRepo, os.Getenv("PIPELINE_TOKEN"))
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{os.Getenv("APP_BASE_URL"), "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Pipeline-Token"},
	}))

	r.Post("/campaigns", campaignHandler.HandleCreate)
	r.Get("/campaigns/{id}/leads", leadsHandler.HandleList)
	r.Post("/campaigns/export", exportHandler.Handle)
	r.Post("/checkout", checkoutHandler.HandleCreate)
	r.Get("/checkout/complete", checkoutHandler.HandleComplete)
	r.Post("/webhooks/stripe", webhookHandler.Handle)

	r.Post("/pipeline/leads", pipelineHandler.HandleCreateLeads)
	r.Get("/pipeline/campaigns/{id}", pipelineHandler.HandleGetCampaign)
	r.Post("/pipeline/campaigns/{id}", pipelineHandler.HandleUpdateCampaign)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Rota de teste sem assinatura: SÓ em desenvolvimento. Em produção ela
	// nem existe — a flag só muda com evidência do processador.
	if os.Getenv("APP_ENV") == "development" {
		devHandler := handlers.NewDevPaymentHandler(campaignRepo)
		r.Post("/dev/mark-paid", devHandler.HandleMarkPaid)
		log.Println("🧪 Rota /dev/mark-paid habilitada (APP_ENV=development)")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 Leadgen API rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
