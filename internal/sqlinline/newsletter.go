package sqlinline

const QSelectSubscriberByEmail = `--sql f9abbe31-14e8-43d7-b58a-e7381b114773
select id, status
from newsletter_subscribers
where email = $1::text
limit 1;
`

const QInsertSubscriber = `--sql 9b0c967b-7228-4d77-864a-419d8795d387
insert into newsletter_subscribers(email, status, subscribed_at)
values ($1::text, 'active', now())
returning id, subscribed_at;
`

// Reactivation updates the existing row in place so the subscriber id stays
// stable across unsubscribe/resubscribe cycles.
const QReactivateSubscriber = `--sql c6f93eba-98fa-4a25-9f76-4a5bcc1ac921
update newsletter_subscribers
set status = 'active', subscribed_at = now(), unsubscribed_at = null
where email = $1::text and status = 'inactive'
returning id, subscribed_at;
`

const QCountActiveSubscribers = `--sql ccbd8bc2-b885-4085-8af9-3b0f996eeb9d
select count(*)
from newsletter_subscribers
where status = 'active';
`
