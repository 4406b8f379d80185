package engagement

import (
	"fmt"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// Notification texts share the language of the seeded content.

func missionCompleted(m domain.Mission) domain.Notification {
	return domain.Notification{
		Kind:  domain.NotifyMissionCompleted,
		Title: fmt.Sprintf("🎉 Missão concluída! +%d moedas", m.Reward),
		Text:  m.Title,
		Delta: m.Reward,
		RefID: m.ID,
	}
}

func purchaseMade(it domain.ShopItem) domain.Notification {
	return domain.Notification{
		Kind:  domain.NotifyPurchaseMade,
		Title: fmt.Sprintf("🛍️ Compra realizada! %s %s", it.Icon, it.Name),
		Text:  fmt.Sprintf("-%d moedas", it.Price),
		Delta: -it.Price,
		RefID: it.ID,
	}
}

func gameCompleted(g domain.MiniGame) domain.Notification {
	return domain.Notification{
		Kind:  domain.NotifyGameCompleted,
		Title: fmt.Sprintf("🎮 Jogo concluído! +%d moedas", g.Reward),
		Text:  g.Title,
		Delta: g.Reward,
		RefID: g.ID,
	}
}

func gameNewRecord(g domain.MiniGame, score int, bonus int64) domain.Notification {
	return domain.Notification{
		Kind:  domain.NotifyGameNewRecord,
		Title: fmt.Sprintf("🏆 Novo recorde! +%d moedas bônus", bonus),
		Text:  fmt.Sprintf("Pontuação: %d", score),
		Delta: bonus,
		RefID: g.ID,
	}
}

func achievementUnlocked(a domain.Achievement) domain.Notification {
	return domain.Notification{
		Kind:  domain.NotifyAchievementUnlocked,
		Title: fmt.Sprintf("🏆 Conquista desbloqueada: %s!", a.Title),
		Text:  a.Description,
		RefID: a.ID,
	}
}
