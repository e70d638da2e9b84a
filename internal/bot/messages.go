package bot

// Chat texts. The audience is Turkish, so everything user-facing stays
// in Turkish; HTML parse mode throughout.
const (
	msgGateIntro = `🔒 <b>Özel Kanal Erişimi Gerekli</b>

Bot'u kullanabilmek için özel kanalımıza katılma isteği göndermelisiniz.

👆 Aşağıdaki butona tıklayarak katılma isteği gönderin, ardından "Kontrol Et" butonuna basın.`

	msgStillPending = "❌ Henüz katılma isteği göndermemişsiniz.\n\nLütfen önce katılma isteği gönderin."

	msgNoInviteLink = "\n\n❌ <b>Henüz davet linki oluşturulmamış.</b>\nAdmin ile iletişime geçin."

	msgApproved = `✅ <b>Katılma isteğiniz onaylandı!</b>

Artık botu kullanabilirsiniz!`

	msgJoinReceived = `✅ <b>Katılma isteğiniz alındı!</b>

/start yazarak bota başlayabilirsiniz.`

	msgMainMenu = `🎯 <b>Borsa Özel Derinlik Bot</b>

🔍 <b>Komutlar:</b>
• /derinlik HISSE – Derinlik analizi
• /teorik HISSE – Teorik analiz
• /temel HISSE – Temel analiz
• /teknik HISSE – Teknik analiz
• /haber HISSE – Şirket haberleri
• /favori – Favori listeniz
• /ozet – Piyasa özeti

💡 <b>Kullanım:</b> Sadece hisse kodu gönderin!
Örnek: <code>THYAO</code>`

	msgHelp = `🤖 <b>Komut Listesi</b>

🔍 <b>Analiz Komutları:</b>
• /derinlik HISSE – Derinlik analizi
• /teorik HISSE – Teorik analiz
• /temel HISSE – Temel analiz
• /teknik HISSE – Teknik analiz
• /haber HISSE – Şirket haberleri

⭐ <b>Favoriler:</b>
• /favori – Listeyi göster
• /favoriekle HISSE – Favorilere ekle
• /favoricikar HISSE – Favorilerden çıkar
• /favorisifirla – Listeyi temizle

💡 <b>Kullanım:</b> Sadece hisse kodu gönderin!
Örnek: <code>THYAO</code>`

	msgFavoritesEmpty = "⭐ Favori listeniz boş.\n\nBir hisse kartındaki \"Favorilere Ekle\" butonunu ya da /favoriekle HISSE komutunu kullanın."
)

const (
	btnSendJoinRequest = "🔗 Katılma İsteği Gönder"
	btnCheckMembership = "✅ İstek Gönderdiysem Kontrol Et"
)
