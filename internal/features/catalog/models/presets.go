package models

import redeemmodels "streamraiser-backend/internal/features/redeem/models"

// Presets is the built-in reward catalog. The seeder upserts these so a
// fresh install has a menu to hand out; admins can add more at runtime.
var Presets = []RewardTemplateCreate{
	{ID: "sprint-interval", Name: "Sprint Interval", Description: "All-out sprint, no coasting", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryFitness, RequiredMs: 30000},
	{ID: "climb-simulation", Name: "Big Climb", Description: "Max resistance climb simulation", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryChallenge, RequiredMs: 300000},
	{ID: "no-sit", Name: "Out of Saddle", Description: "Ride standing, no sitting down", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryFitness, RequiredMs: 60000},
	{ID: "power-surge", Name: "Power Surge", Description: "Hit the target power five times", Type: redeemmodels.RedeemTypeCounter, Category: redeemmodels.CategoryFitness, TargetCount: 5},
	{ID: "cadence-challenge", Name: "Cadence Challenge", Description: "Spin past 110 rpm and hold it", Type: redeemmodels.RedeemTypeCounter, Category: redeemmodels.CategoryPerformance, TargetCount: 10},
	{ID: "hydration-lap", Name: "Hydration Lap", Description: "Drink up, banked for later", Type: redeemmodels.RedeemTypeBanked, Category: redeemmodels.CategoryWellness, Quantity: 5},
	{ID: "attack-mode", Name: "Attack Mode", Description: "Aggressive pace until switched off", Type: redeemmodels.RedeemTypeToggle, Category: redeemmodels.CategoryFitness},
	{ID: "aero-tuck", Name: "Aero Tuck", Description: "Hold the aero position", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryPerformance, RequiredMs: 45000},
	{ID: "no-hands", Name: "Look Ma, No Hands", Description: "Hands off the bars (trainer only!)", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryChallenge, RequiredMs: 15000},
	{ID: "low-gear-grind", Name: "Low Gear Grind", Description: "Heaviest gear, slow grind", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryChallenge, RequiredMs: 120000},
	{ID: "one-leg-drill", Name: "Single Leg Drill", Description: "Pedal one-legged, alternate sides", Type: redeemmodels.RedeemTypeCounter, Category: redeemmodels.CategoryPerformance, TargetCount: 6},
	{ID: "push-ups", Name: "Push-Ups", Description: "Off the bike and down for twenty", Type: redeemmodels.RedeemTypeCounter, Category: redeemmodels.CategoryFitness, TargetCount: 20},
	{ID: "squats", Name: "Squats", Description: "Twenty squats, camera on", Type: redeemmodels.RedeemTypeCounter, Category: redeemmodels.CategoryFitness, TargetCount: 20},
	{ID: "plank", Name: "Plank", Description: "Hold a plank next to the bike", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryFitness, RequiredMs: 60000},
	{ID: "recovery-spin", Name: "Recovery Spin", Description: "Easy spin, heart rate down", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryWellness, RequiredMs: 120000},
	{ID: "shortest-path-climb", Name: "Shortest Path to Summit", Description: "Reroute to the steepest way up", Type: redeemmodels.RedeemTypeInstant, Category: redeemmodels.CategoryChallenge},
	{ID: "song-request", Name: "Song Request", Description: "Queue a song of your choice", Type: redeemmodels.RedeemTypeBanked, Category: redeemmodels.CategoryEntertainment, Quantity: 3},
	{ID: "dad-joke", Name: "Dad Joke", Description: "One groaner, delivered live", Type: redeemmodels.RedeemTypeInstant, Category: redeemmodels.CategoryEntertainment},
	{ID: "truth-dare", Name: "Truth or Dare", Description: "Chat picks, streamer answers", Type: redeemmodels.RedeemTypeInstant, Category: redeemmodels.CategorySocial},
	{ID: "shoutout", Name: "Shoutout", Description: "On-stream shoutout, banked", Type: redeemmodels.RedeemTypeBanked, Category: redeemmodels.CategorySocial, Quantity: 5},
	{ID: "whisper-mode", Name: "Whisper Mode", Description: "Commentary at a whisper until toggled off", Type: redeemmodels.RedeemTypeToggle, Category: redeemmodels.CategoryCosmetic},
	{ID: "snack-break", Name: "Snack Break", Description: "Snack on camera, banked for later", Type: redeemmodels.RedeemTypeBanked, Category: redeemmodels.CategoryWellness, Quantity: 3},
	{ID: "stretch-break", Name: "Stretch Break", Description: "Off the bike for a full stretch", Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryWellness, RequiredMs: 60000},
}
