package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EnrichmentNotifier é o webhook que acorda o pipeline de enriquecimento.
type EnrichmentNotifier interface {
	Notify(ctx context.Context, payload CampaignCreatedPayload) error
}

// ContactSyncer joga o contato na lista de marketing. Fire-and-forget de
// verdade: falha aqui é engolida, nunca Nacka a mensagem.
type ContactSyncer interface {
	UpsertContact(ctx context.Context, email, website, source string) error
}

// Worker é o ÚNICO lugar que dispara os side effects de criação de campanha:
// todo caller publica o evento e o worker faz o resto.
type Worker struct {
	Channel  *amqp.Channel
	Notifier EnrichmentNotifier
	Syncer   ContactSyncer
}

func NewWorker(ch *amqp.Channel, notifier EnrichmentNotifier, syncer ContactSyncer) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Syncer:   syncer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload CampaignCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Campanha criada: %s (%s)", payload.CampaignID, payload.URL)

			ctx := context.Background()

			// Gatilho de enriquecimento: at-most-once. Falha vai pra DLQ e
			// a campanha segue existindo — o dono só espera mais.
			if err := w.Notifier.Notify(ctx, payload); err != nil {
				log.Printf("❌ [WORKER] Falha no gatilho de enriquecimento: %s", err)
				d.Nack(false, false)
				continue
			}

			// Sync de marketing: engolido. Não derruba a mensagem.
			if w.Syncer != nil {
				if err := w.Syncer.UpsertContact(ctx, payload.Email, payload.URL, "campaign_created"); err != nil {
					log.Printf("⚠️ [WORKER] Falha no sync de contato (ignorada): %s", err)
				}
			}

			log.Printf("✅ [WORKER] Pipeline avisado para campanha %s", payload.CampaignID)
			d.Ack(false)
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
