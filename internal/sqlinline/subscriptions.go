package sqlinline

const QInsertSubscription = `--sql 6c4bff1c-09b4-4875-8c5a-e1d04d1a02d0
insert into subscriptions(donation_id, provider_subscription, provider_price, status, created_at)
values ($1::bigint, $2::text, $3::text, $4::text, now())
returning id, created_at;
`
