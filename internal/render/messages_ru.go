package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Russian

	message.SetString(lang, Welcome, "🎅 Добро пожаловать в Тайного Санту! 🎄\n\n"+
		"Я помогу организовать обмен подарками. Вот что вы можете сделать:\n\n"+
		"🎅 Стать участником - зарегистрироваться в игре\n"+
		"📦 Указать адрес доставки - куда отправить вам подарок\n"+
		"🎁 Узнать своего получателя - после жеребьевки\n"+
		"🔐 Отправить код подарка - чтобы получатель мог забрать подарок\n\n"+
		"Для администрирования используйте /admin")
	message.SetString(lang, Help, "🎅 Помощь по Тайному Санте 🎄\n\n"+
		"Как это работает:\n"+
		"1. Нажмите 'Стать участником'\n"+
		"2. Укажите адрес доставки\n"+
		"3. После жеребьевки нажмите 'Узнать своего получателя'\n"+
		"4. Отправьте подарок получателю\n"+
		"5. Нажмите 'Отправить код подарка'\n\n"+
		"Ваш Санта также отправит вам код для получения подарка!\n\n"+
		"Вопросы? Обращайтесь к организатору.")
	message.SetString(lang, AdminPanel, "Панель администратора:")
	message.SetString(lang, Unauthorized, "У вас нет прав администратора!")
	message.SetString(lang, AlreadyRegistered, "✅ Вы уже зарегистрированы как участник!\nВаше имя: %s\nНе забудьте указать адрес доставки!")
	message.SetString(lang, JoinPrompt, "🎅 Отлично! Вы хотите стать участником Тайного Санты?\n\n"+
		"Правила:\n"+
		"1. Вы получите имя другого участника\n"+
		"2. Пришлете ему подарок\n"+
		"3. Получите подарок от своего Тайного Санты\n\n"+
		"Подтвердите участие:")
	message.SetString(lang, Joined, "🎉 Поздравляем! Вы стали участником Тайного Санты!\n\n"+
		"Теперь укажите адрес доставки, куда ваш Санта сможет отправить подарок.")
	message.SetString(lang, NotRegistered, "Вы еще не зарегистрированы. Сначала нажмите 'Стать участником'.")
	message.SetString(lang, AddressPrompt, "📝 Пожалуйста, введите ваш адрес доставки в формате:\n"+
		"Город, улица, дом, квартира, индекс\n\n"+
		"Пример: Москва, ул. Пушкина, д. 10, кв. 5, 123456")
	message.SetString(lang, AddressSaved, "✅ Адрес успешно сохранен!\nТеперь ваш Тайный Санта знает, куда отправить подарок.")
	message.SetString(lang, AddressEmpty, "Адрес не может быть пустым. Введите его еще раз или нажмите Отмена.")
	message.SetString(lang, DrawNotDone, "Жеребьевка еще не проведена! Ожидайте начала.")
	message.SetString(lang, NotInDraw, "Вы не участвуете в текущей жеребьевке.")
	message.SetString(lang, RecipientInfo, "🎅 Ваш получатель: %s\n👤 Username: %s\n")
	message.SetString(lang, RecipientAddress, "📦 Адрес доставки: %s")
	message.SetString(lang, RecipientNoAddress, "📦 Адрес еще не указан. Напомните получателю указать адрес!")
	message.SetString(lang, ProofPrompt, "🔐 Введите код/трек-номер для получения вашего подарка или пришлите фото:\n\n"+
		"• Трек-номер почтового отправления\n"+
		"• Код для получения в пункте выдачи\n"+
		"• Другой идентификатор подарка")
	message.SetString(lang, ProofPromptCode, "🔐 Введите код/трек-номер для получения вашего подарка:\n\n"+
		"• Трек-номер почтового отправления\n"+
		"• Код для получения в пункте выдачи\n"+
		"• Другой идентификатор подарка")
	message.SetString(lang, ProofPromptPhoto, "📷 Пришлите фото QR-кода или этикетки для получения подарка.")
	message.SetString(lang, ProofPickupPrompt, "📍 Теперь введите адрес пункта выдачи.")
	message.SetString(lang, ProofExpectCode, "Пожалуйста, отправьте код текстом.")
	message.SetString(lang, ProofExpectPhoto, "Сначала пришлите фото.")
	message.SetString(lang, ProofDelivered, "✅ Код подарка успешно отправлен вашему получателю!")
	message.SetString(lang, ProofUndelivered, "⚠️ Не удалось отправить код получателю. Возможно, он заблокировал бота.")
	message.SetString(lang, RecipientNotFound, "❌ Не найден получатель. Обратитесь к администратору.")
	message.SetString(lang, ProofRelayCode, "🎁 Ваш Тайный Санта отправил вам подарок!\n\n🔐 Код для получения: %s\n🎅 От: %s (%s)")
	message.SetString(lang, ProofRelayPhoto, "🎁 Ваш Тайный Санта отправил вам подарок!\n\n📍 Адрес пункта выдачи: %s\n🎅 От: %s (%s)")
	message.SetString(lang, NoParticipants, "Участников пока нет.")
	message.SetString(lang, ParticipantsHeader, "📋 Список участников:\n\n")
	message.SetString(lang, ParticipantLine, "%s (%s) - Адрес: %s\n")
	message.SetString(lang, DrawConfirm, "🎲 Провести жеребьевку для %d участников? Предыдущие пары будут заменены. Подтвердите.")
	message.SetString(lang, DrawInsufficient, "❌ Для жеребьевки нужно минимум 2 участника!")
	message.SetString(lang, DrawDone, "✅ Жеребьевка успешно проведена для %d участников!\n• Уведомлено: %d\n• Не удалось: %d")
	message.SetString(lang, DrawFailed, "❌ Ошибка при проведении жеребьевки!")
	message.SetString(lang, DrawNotice, "🎉 Жеребьевка проведена!\n\n🎅 Ваш получатель: %s\n👤 %s\n\nТеперь вы можете отправить подарок!")
	message.SetString(lang, BroadcastPrompt, "Введите сообщение для рассылки всем участникам:")
	message.SetString(lang, BroadcastMessage, "📢 Сообщение от организатора:\n\n%s")
	message.SetString(lang, BroadcastDone, "✅ Рассылка завершена:\n• Отправлено: %d\n• Не удалось: %d")
	message.SetString(lang, BroadcastEmpty, "Сообщение не может быть пустым.")
	message.SetString(lang, Cancelled, "Отменено.")
	message.SetString(lang, Unknown, "Не понимаю. Используйте кнопки меню.")
	message.SetString(lang, ReminderAddress, "📦 Напоминание: вы еще не указали адрес доставки. Вашему Тайному Санте он нужен!")
	message.SetString(lang, HandleUnknown, "не указан")
	message.SetString(lang, Failure, "Что-то пошло не так. Попробуйте позже.")
}
