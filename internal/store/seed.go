package store

import (
	"time"

	"ideaspark/internal/models"
)

// 种子数据的作者快照，随 Idea 一起冗余存储
var (
	seedUserAlice   = models.User{ID: "user1", Name: "Alice Wonderland", AvatarURL: "https://placehold.co/100x100/E91E63/FFFFFF.png?text=A"}
	seedUserBob     = models.User{ID: "user2", Name: "Bob The Builder", AvatarURL: "https://placehold.co/100x100/4CAF50/FFFFFF.png?text=B"}
	seedUserCharlie = models.User{ID: "user3", Name: "Charlie Chaplin", AvatarURL: "https://placehold.co/100x100/FFC107/333333.png?text=C"}
)

// seedBase pins the relative ages of the catalog entries for this process.
// Once the self-heal write has run their timestamps live in the local store
// and override these on every later load.
var seedBase = time.Now()

func seedIdea(id, title, description string, tags []string, category models.IdeaCategory, author models.User, age time.Duration, upvotes int, cover, hint string) models.Idea {
	return models.Idea{
		ID:            id,
		Title:         title,
		Description:   description,
		Tags:          tags,
		Category:      category,
		UserID:        author.ID,
		UserName:      author.Name,
		UserAvatarURL: author.AvatarURL,
		CreatedAt:     seedBase.Add(-age),
		Upvotes:       upvotes,
		CoverImageURL: cover,
		DataAiHint:    hint,
	}
}

// SeedIdeas returns the immutable catalog defaults. Pure and deterministic
// within a process; callers must not mutate the returned records in place.
func SeedIdeas() []models.Idea {
	return []models.Idea{
		seedIdea("1", "AI-Powered Personal Garden Assistant",
			"An app that uses AI to identify plant diseases, suggest optimal watering schedules, and provide personalized gardening tips. It connects to smart sensors in your garden for real-time data.",
			[]string{"AI", "Gardening", "MobileApp", "IoT", "Sustainability"},
			models.CategorySoftware, seedUserAlice, 2*time.Hour, 152,
			"https://placehold.co/600x400/2ECC71/FFFFFF.png?text=GardenAI", "garden tech"),
		seedIdea("2", "Interactive Storytelling Platform for Kids",
			"A web platform where children can create their own interactive stories by choosing characters, settings, and plot twists. Features collaborative storytelling and animated illustrations.",
			[]string{"Education", "Kids", "Storytelling", "WebPlatform", "Creativity"},
			models.CategoryEducation, seedUserBob, 24*time.Hour, 230,
			"https://placehold.co/600x400/3498DB/FFFFFF.png?text=StoryFun", "kids story"),
		seedIdea("3", "Sustainable Urban Commuting Solution",
			"A network of modular, solar-powered e-bike charging stations combined with a subscription service for high-quality e-bikes. Aims to reduce traffic congestion and promote green transport.",
			[]string{"Sustainability", "UrbanPlanning", "Ebike", "GreenTech", "Transportation"},
			models.CategorySustainability, seedUserCharlie, 3*24*time.Hour, 98,
			"https://placehold.co/600x400/E67E22/FFFFFF.png?text=EcoRide", "ebike city"),
		seedIdea("4", "Virtual Reality Museum Tours",
			"Experience world-famous museums from the comfort of your home using VR. Includes guided tours, interactive exhibits, and historical context provided by virtual curators.",
			[]string{"VR", "Museum", "Culture", "Technology", "Education"},
			models.CategoryCreativeArts, seedUserAlice, 5*time.Hour, 188,
			"https://placehold.co/600x400/9B59B6/FFFFFF.png?text=VRMuseum", "virtual museum"),
		seedIdea("5", "Personalized Mental Wellness Companion",
			"An AI chatbot that provides daily mental wellness check-ins, guided meditation sessions, and personalized coping strategies based on user input and mood tracking.",
			[]string{"MentalHealth", "AI", "Wellness", "Chatbot", "MobileApp"},
			models.CategoryHealthWellness, seedUserBob, 5*24*time.Hour, 305,
			"https://placehold.co/600x400/1ABC9C/FFFFFF.png?text=MindWell", "wellness app"),
		seedIdea("6", "Community Skill-Share Network",
			"A hyperlocal platform connecting neighbors for skill exchange – learn to bake from Susan down the street, or teach someone basic coding. Fosters community and lifelong learning.",
			[]string{"Community", "SkillShare", "Local", "Education", "Networking"},
			models.CategoryNonprofit, seedUserAlice, 6*24*time.Hour, 120,
			"https://placehold.co/600x400/E74C3C/FFFFFF.png?text=Connect", "community sharing"),
		seedIdea("7", "AI-Driven Ethical Fashion Advisor",
			"An app that scans clothing brands and items to provide a score on their ethical and sustainability practices. Helps consumers make informed choices to support responsible brands.",
			[]string{"EthicalFashion", "Sustainability", "AI", "ConsumerTech", "App"},
			models.CategorySustainability, seedUserBob, 10*24*time.Hour, 205,
			"https://placehold.co/600x400/F1C40F/333333.png?text=EthiWear", "fashion ethics"),
		seedIdea("8", "Gamified Language Learning for Niche Languages",
			"A mobile game that makes learning less common or endangered languages fun and accessible. Uses storytelling, cultural immersion techniques, and community challenges.",
			[]string{"LanguageLearning", "Gamification", "Education", "Culture", "MobileGame"},
			models.CategoryEducation, seedUserCharlie, 15*24*time.Hour, 165,
			"https://placehold.co/600x400/D35400/FFFFFF.png?text=LingoPlay", "language game"),
	}
}
