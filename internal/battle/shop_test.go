package battle

import (
	"errors"
	"testing"
	"time"

	"github.com/190dpa/chatyni-rpg/internal/game"
)

func TestBuyShopItem_PermanentAndConsumable(t *testing.T) {
	p := testProfile("hero")
	p.Coins = 100
	repo := newMockRepo(p)
	svc := newTestService(repo)
	svc.cat.ShopItems = []game.ShopItem{
		{ID: "whetstone", Name: "Whetstone", Price: 60, Kind: "permanent", BonusStat: "strength", BonusValue: 2},
		{ID: "potion", Name: "Healing Potion", Price: 30, Kind: "consumable", HealValue: 25},
	}

	if _, err := svc.BuyShopItem("hero", "whetstone"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Strength != 12 || p.Coins != 40 {
		t.Fatalf("permanent bonus not applied: str=%d coins=%d", p.Strength, p.Coins)
	}

	if _, err := svc.BuyShopItem("hero", "potion"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Items) != 1 || p.Items[0].ItemID != "potion" || p.Items[0].Quantity != 1 {
		t.Fatalf("consumable not stocked: %+v", p.Items)
	}

	if _, err := svc.BuyShopItem("hero", "potion"); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins at 10 coins, got %v", err)
	}
	if _, err := svc.BuyShopItem("hero", "nope"); !errors.Is(err, ErrShopItemNotFound) {
		t.Fatalf("expected ErrShopItemNotFound, got %v", err)
	}
}

func TestStock_RotationAndPurchase(t *testing.T) {
	p := testProfile("hero")
	p.Coins = 1000
	repo := newMockRepo(p)
	svc := newTestService(repo)
	svc.cat.Weapons = map[string]game.Weapon{
		"sword":  {ID: "sword", Name: "Iron Sword", Price: 300},
		"dagger": {ID: "dagger", Name: "Venom Dagger", Price: 450},
		"adminblade": {ID: "adminblade", Name: "Supreme Sword", Price: 1,
			OnHit: &game.OnHitTrigger{Kind: game.TriggerInstantKill, Chance: 100, RequiresAdmin: true}},
		"relic": {ID: "relic", Name: "Unsellable Relic"},
	}

	if _, err := svc.BuyStockWeapon("hero", "sword"); !errors.Is(err, ErrItemNotInStock) {
		t.Fatalf("expected empty stock before rotation, got %v", err)
	}

	svc.RefreshStock(time.Hour)
	stock := svc.CurrentStock()
	if len(stock) != 2 {
		t.Fatalf("only the two purchasable weapons may rotate in, got %d", len(stock))
	}
	for _, entry := range stock {
		if entry.Weapon.ID == "adminblade" || entry.Weapon.ID == "relic" {
			t.Fatalf("weapon %s must never rotate in", entry.Weapon.ID)
		}
	}

	if _, err := svc.BuyStockWeapon("hero", "sword"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Coins != 700 {
		t.Fatalf("expected 300 coins spent, got %d", p.Coins)
	}
	if len(p.Items) != 1 || p.Items[0].Kind != "weapon" {
		t.Fatalf("weapon not delivered: %+v", p.Items)
	}

	// owning it allows equipping
	if _, err := svc.EquipWeapon("hero", "sword"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.EquippedWeaponID != "sword" {
		t.Fatalf("weapon not equipped: %q", p.EquippedWeaponID)
	}
	if _, err := svc.EquipWeapon("hero", "dagger"); !errors.Is(err, ErrWeaponNotOwned) {
		t.Fatalf("expected ErrWeaponNotOwned, got %v", err)
	}
	if _, err := svc.EquipWeapon("hero", ""); err != nil {
		t.Fatalf("unexpected error unequipping: %v", err)
	}
}

func TestClaimQuest_Lifecycle(t *testing.T) {
	p := testProfile("hero")
	repo := newMockRepo(p)
	svc := newTestService(repo)
	svc.cat.Quests = []game.QuestTemplate{
		{ID: "daily_fight", Kind: "FIGHT", Target: 1, RewardXP: 30, RewardCoins: 15},
	}

	if changed := svc.EnsureDailyQuest(p); !changed {
		t.Fatal("a stale profile must get today's quest")
	}
	if p.QuestID != "daily_fight" || p.QuestCompleted {
		t.Fatalf("unexpected quest state: %+v", p)
	}
	if changed := svc.EnsureDailyQuest(p); changed {
		t.Fatal("same-day reassignment must be a no-op")
	}

	if _, err := svc.ClaimQuest("hero"); !errors.Is(err, ErrQuestNotComplete) {
		t.Fatalf("expected ErrQuestNotComplete, got %v", err)
	}

	// a slime kill completes the FIGHT 1 quest
	if _, err := svc.StartSolo("hero", "slime"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	killCurrentMonster(t, svc, "hero")
	if !p.QuestCompleted {
		t.Fatal("kill must complete the quest")
	}

	delta, err := svc.ClaimQuest("hero")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta.XP != 30 || delta.Coins != 15 {
		t.Fatalf("unexpected claim delta: %+v", delta)
	}
	if _, err := svc.ClaimQuest("hero"); !errors.Is(err, ErrQuestAlreadyClaimed) {
		t.Fatalf("expected ErrQuestAlreadyClaimed, got %v", err)
	}
}

func TestRollCharacter_SpendsCoinsAndGrantsCard(t *testing.T) {
	p := testProfile("hero")
	p.Coins = 250
	repo := newMockRepo(p)
	svc := newTestService(repo)
	svc.cat.RollCost = 100
	svc.cat.RollTiers = []game.RarityTier{
		{Rarity: "Lendária", Chance: 5},
		{Rarity: "Comum", Chance: 95},
	}
	svc.cat.CardsByRarity["Comum"] = []game.HeroCardTemplate{
		{ID: "soldier", Name: "Soldier", Rarity: "Comum"},
	}

	res, err := svc.RollCharacter("hero")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CoinsSpent != 100 || p.Coins != 150 {
		t.Fatalf("expected 100 coins spent, coins=%d", p.Coins)
	}
	if len(p.Cards) != 1 || p.Cards[0].CardID != res.Card.ID {
		t.Fatalf("card not delivered: %+v", p.Cards)
	}
	if p.Cards[0].InstanceID == "" {
		t.Fatal("card instances must carry an id")
	}

	p.Coins = 50
	if _, err := svc.RollCharacter("hero"); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
}

func TestRollCharacter_LuckBurnsUses(t *testing.T) {
	p := testProfile("hero")
	p.Coins = 1000
	p.LuckMultiplier = 5
	p.LuckUses = 1
	repo := newMockRepo(p)
	svc := newTestService(repo)
	svc.cat.RollCost = 100
	svc.cat.RollTiers = []game.RarityTier{
		{Rarity: "Lendária", Chance: 5},
		{Rarity: "Comum", Chance: 95},
	}
	svc.cat.CardsByRarity["Comum"] = []game.HeroCardTemplate{
		{ID: "soldier", Name: "Soldier", Rarity: "Comum"},
	}

	res, err := svc.RollCharacter("hero")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.LuckUsed {
		t.Fatal("active blessing must be consumed")
	}
	if p.LuckUses != 0 || p.LuckMultiplier != 1 {
		t.Fatalf("expected blessing to reset, multiplier=%v uses=%d", p.LuckMultiplier, p.LuckUses)
	}
}
