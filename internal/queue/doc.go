// Package queue реализует PendingQueue — потокобезопасную очередь
// ожидающих заказов с двумя классами приоритета.
//
// PendingQueue отвечает за:
//   - Хранение заказов в двух независимых FIFO-последовательностях (VIP / Normal)
//   - Выдачу по приоритету: сначала голова VIP, затем голова Normal
//   - Блокирующее получение с таймаутом (монитор "notify-and-recheck")
//   - Возврат отменённых заказов в голову или хвост своего класса
//   - Снапшоты для отображения без доступа к живым структурам
//
// Все операции атомарны относительно друг друга: обе последовательности
// защищены одним мьютексом, потому что выбор по приоритету требует
// согласованного взгляда на оба класса сразу.
//
// Пробуждение ожидающих реализовано широковещательным каналом,
// закрываемым при переходе последовательности класса из пустого
// состояния в непустое. Проснувшийся
// потребитель обязан перепроверить очередь: при нескольких ожидающих
// заказ достанется одному, остальные продолжают ждать до своего дедлайна.
// sync.Cond не используется из-за отсутствия ожидания с таймаутом.
package queue
