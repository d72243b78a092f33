package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, Welcome, "🎅 Welcome to Secret Santa! 🎄\n\n"+
		"I help organise the gift exchange. Here is what you can do:\n\n"+
		"🎅 Join - register for the game\n"+
		"📦 Set delivery address - where your gift should go\n"+
		"🎁 My recipient - available after the draw\n"+
		"🔐 Send gift proof - so your recipient can collect the gift\n\n"+
		"Administrators: use /admin")
	message.SetString(lang, Help, "🎅 Secret Santa help 🎄\n\n"+
		"How it works:\n"+
		"1. Press 'Join'\n"+
		"2. Set your delivery address\n"+
		"3. After the draw press 'My recipient'\n"+
		"4. Send your gift\n"+
		"5. Press 'Send gift proof'\n\n"+
		"Your own Santa will send you a code to collect your gift too!\n\n"+
		"Questions? Ask the organiser.")
	message.SetString(lang, AdminPanel, "Admin panel:")
	message.SetString(lang, Unauthorized, "You are not an administrator!")
	message.SetString(lang, AlreadyRegistered, "✅ You are already registered!\nYour name: %s\nDon't forget to set your delivery address!")
	message.SetString(lang, JoinPrompt, "🎅 Great! Do you want to join Secret Santa?\n\n"+
		"Rules:\n"+
		"1. You get the name of another participant\n"+
		"2. You send them a gift\n"+
		"3. You receive a gift from your own Secret Santa\n\n"+
		"Confirm to join:")
	message.SetString(lang, Joined, "🎉 Congratulations! You are now a Secret Santa participant!\n\n"+
		"Now set the delivery address where your Santa can send your gift.")
	message.SetString(lang, NotRegistered, "You are not registered yet. Press 'Join' first.")
	message.SetString(lang, AddressPrompt, "📝 Please enter your delivery address:\n"+
		"City, street, house, flat, postcode\n\n"+
		"Example: London, 221B Baker Street, NW1 6XE")
	message.SetString(lang, AddressSaved, "✅ Address saved!\nYour Secret Santa now knows where to send the gift.")
	message.SetString(lang, AddressEmpty, "The address cannot be empty. Please enter it again or press Cancel.")
	message.SetString(lang, DrawNotDone, "The draw has not happened yet! Please wait.")
	message.SetString(lang, NotInDraw, "You are not part of the current draw.")
	message.SetString(lang, RecipientInfo, "🎅 Your recipient: %s\n👤 Handle: %s\n")
	message.SetString(lang, RecipientAddress, "📦 Delivery address: %s")
	message.SetString(lang, RecipientNoAddress, "📦 No address yet. Remind your recipient to set one!")
	message.SetString(lang, ProofPrompt, "🔐 Send the code / tracking number for your gift, or a photo of the parcel:\n\n"+
		"• Postal tracking number\n"+
		"• Pickup point code\n"+
		"• Any other gift identifier")
	message.SetString(lang, ProofPromptCode, "🔐 Enter the code / tracking number for your gift:\n\n"+
		"• Postal tracking number\n"+
		"• Pickup point code\n"+
		"• Any other gift identifier")
	message.SetString(lang, ProofPromptPhoto, "📷 Send a photo of the gift's pickup code (QR code or label).")
	message.SetString(lang, ProofPickupPrompt, "📍 Now enter the pickup address for the gift.")
	message.SetString(lang, ProofExpectCode, "Please send the code as text.")
	message.SetString(lang, ProofExpectPhoto, "Please send a photo first.")
	message.SetString(lang, ProofDelivered, "✅ Your gift proof was delivered to your recipient!")
	message.SetString(lang, ProofUndelivered, "⚠️ The gift proof is saved, but it could not be delivered to your recipient. They may have blocked the bot.")
	message.SetString(lang, RecipientNotFound, "❌ Recipient not found. Please contact the administrator.")
	message.SetString(lang, ProofRelayCode, "🎁 Your Secret Santa sent you a gift!\n\n🔐 Pickup code: %s\n🎅 From: %s (%s)")
	message.SetString(lang, ProofRelayPhoto, "🎁 Your Secret Santa sent you a gift!\n\n📍 Pickup address: %s\n🎅 From: %s (%s)")
	message.SetString(lang, NoParticipants, "No participants yet.")
	message.SetString(lang, ParticipantsHeader, "📋 Participants:\n\n")
	message.SetString(lang, ParticipantLine, "%s (%s) - Address: %s\n")
	message.SetString(lang, DrawConfirm, "🎲 Run the draw for %d participants? Any previous assignment will be replaced. Confirm to continue.")
	message.SetString(lang, DrawInsufficient, "❌ At least 2 participants are needed for the draw!")
	message.SetString(lang, DrawDone, "✅ Draw complete for %d participants!\n• Notified: %d\n• Failed: %d")
	message.SetString(lang, DrawFailed, "❌ The draw failed!")
	message.SetString(lang, DrawNotice, "🎉 The draw is done!\n\n🎅 Your recipient: %s\n👤 %s\n\nYou can send your gift now!")
	message.SetString(lang, BroadcastPrompt, "Enter the message to send to every participant:")
	message.SetString(lang, BroadcastMessage, "📢 Message from the organiser:\n\n%s")
	message.SetString(lang, BroadcastDone, "✅ Broadcast finished:\n• Sent: %d\n• Failed: %d")
	message.SetString(lang, BroadcastEmpty, "The message cannot be empty.")
	message.SetString(lang, Cancelled, "Cancelled.")
	message.SetString(lang, Unknown, "I did not understand that. Use the menu buttons.")
	message.SetString(lang, ReminderAddress, "📦 Reminder: you have not set a delivery address yet. Your Secret Santa needs it!")
	message.SetString(lang, HandleUnknown, "not set")
	message.SetString(lang, Failure, "Something went wrong. Please try again later.")
}
